package facility

import (
	"errors"
	"fmt"
)

var (
	ErrFacilityNotFound      = errors.New("facility not found")
	ErrCourtNotFound         = errors.New("court not found")
	ErrNotOwner              = errors.New("facility is not owned by the caller")
	ErrActiveBookings        = errors.New("active bookings exist")
	ErrBookedSlotsDeselected = errors.New("booked slots cannot be removed")
	ErrReplaceWithBookings   = errors.New("slots cannot be replaced while some are booked")
	ErrAlreadyOwned          = errors.New("facility already has an owner")
)

// ValidationError reports input rejected before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
