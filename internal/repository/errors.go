package repository

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrSlotBooked     = errors.New("slot already booked")
	ErrActiveBookings = errors.New("active bookings exist")
	ErrNotOwner       = errors.New("not the owner")

	ErrReferenceMissing = errors.New("referenced row does not exist")
)
