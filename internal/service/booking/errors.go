package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrSlotNotFound     = errors.New("slot not found")
	ErrSlotUnavailable  = errors.New("slot is already booked")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingNotActive = errors.New("booking is not active")
	ErrNotAllowed       = errors.New("not allowed to change this booking")
)

type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry in %s", e.RetryAfter)
}

// PartialWriteError reports that the second write of a booking transition
// failed after the first one succeeded.
type PartialWriteError struct {
	Step      string
	BookingID int64
	SlotID    int64
	Err       error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write at %q (booking %d, slot %d): %v", e.Step, e.BookingID, e.SlotID, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
