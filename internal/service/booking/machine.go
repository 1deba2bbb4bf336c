package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kirinyoku/courtbook/internal/domain"
	"github.com/kirinyoku/courtbook/internal/repository"
)

// Ledger is the storage a booking transition runs against. Swap methods are
// compare-and-swap updates reporting whether the row changed.
//
// Book and Cancel write twice. A failed second write is reported as a
// *PartialWriteError and the first write stays in place unless the Ledger
// is bound to a transaction the caller rolls back.
type Ledger interface {
	GetSlot(ctx context.Context, slotID int64) (*domain.CourtSlot, error)
	GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	InsertBooking(ctx context.Context, userID uuid.UUID, slotID int64, at time.Time) (*domain.Booking, error)
	SwapSlotBooked(ctx context.Context, slotID int64, from, to bool) (bool, error)
	SwapBookingStatus(ctx context.Context, bookingID int64, from, to bool) (bool, error)
}

type State int

const (
	Available State = iota
	Booked
	Cancelled
	Inconsistent
)

func (s State) String() string {
	switch s {
	case Available:
		return "available"
	case Booked:
		return "booked"
	case Cancelled:
		return "cancelled"
	default:
		return "inconsistent"
	}
}

// PairState derives the state of a slot and the booking referencing it.
// b is nil when the slot has no booking.
func PairState(slot domain.CourtSlot, b *domain.Booking) State {
	switch {
	case b == nil && slot.IsBooked:
		return Inconsistent
	case b == nil:
		return Available
	case b.Status && slot.IsBooked:
		return Booked
	case b.Status:
		return Inconsistent
	default:
		return Cancelled
	}
}

// Transition is the pair after a successful book or cancel.
type Transition struct {
	Booking domain.Booking
	Slot    domain.CourtSlot
}

// Book creates an active booking for a free slot and marks the slot booked.
// The booking row is written before the flag flips.
//
// Returns:
//   - error: ErrSlotNotFound if the slot does not exist.
//   - error: ErrSlotUnavailable if the slot is booked or another booking won the race.
//   - error: *PartialWriteError if flagging the slot failed after the insert.
//     When the flag was already set it wraps ErrSlotUnavailable.
func Book(ctx context.Context, l Ledger, userID uuid.UUID, slotID int64, now time.Time) (*Transition, error) {
	const op = "booking.Book"

	slot, err := l.GetSlot(ctx, slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrSlotNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if slot.IsBooked {
		return nil, fmt.Errorf("%s:%w", op, ErrSlotUnavailable)
	}

	b, err := l.InsertBooking(ctx, userID, slotID, now)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s:%w", op, ErrSlotUnavailable)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	swapped, err := l.SwapSlotBooked(ctx, slotID, false, true)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, &PartialWriteError{
			Step:      "mark slot booked",
			BookingID: b.ID,
			SlotID:    slotID,
			Err:       err,
		})
	}

	if !swapped {
		return nil, fmt.Errorf("%s:%w", op, &PartialWriteError{
			Step:      "mark slot booked",
			BookingID: b.ID,
			SlotID:    slotID,
			Err:       ErrSlotUnavailable,
		})
	}

	slot.IsBooked = true

	return &Transition{Booking: *b, Slot: *slot}, nil
}

// Cancel deactivates an active booking and frees its slot. A slot that is
// already free is left as is.
//
// Returns:
//   - error: ErrBookingNotFound if the booking does not exist.
//   - error: ErrBookingNotActive if the booking is already cancelled.
//   - error: *PartialWriteError if freeing the slot failed after the status change.
func Cancel(ctx context.Context, l Ledger, bookingID int64) (*Transition, error) {
	const op = "booking.Cancel"

	b, err := l.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if !b.Status {
		return nil, fmt.Errorf("%s:%w", op, ErrBookingNotActive)
	}

	slot, err := l.GetSlot(ctx, b.CourtSlotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrSlotNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	swapped, err := l.SwapBookingStatus(ctx, bookingID, true, false)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if !swapped {
		return nil, fmt.Errorf("%s:%w", op, ErrBookingNotActive)
	}

	if _, err := l.SwapSlotBooked(ctx, b.CourtSlotID, true, false); err != nil {
		return nil, fmt.Errorf("%s:%w", op, &PartialWriteError{
			Step:      "free slot",
			BookingID: bookingID,
			SlotID:    b.CourtSlotID,
			Err:       err,
		})
	}

	b.Status = false
	slot.IsBooked = false

	return &Transition{Booking: *b, Slot: *slot}, nil
}
