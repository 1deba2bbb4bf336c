// Package events carries booking domain events to downstream consumers.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys.
const (
	KeyBookingCreated    = "booking.created"
	KeyBookingCancelled  = "booking.cancelled"
	KeyCourtSlotsUpdated = "court.slots_updated"
	KeyFacilityDeleted   = "facility.deleted"
)

type BookingEvent struct {
	BookingID  int64     `json:"booking_id"`
	UserID     uuid.UUID `json:"user_id"`
	SlotID     int64     `json:"slot_id"`
	CourtID    int64     `json:"court_id"`
	FacilityID int64     `json:"facility_id"`
	Day        string    `json:"day"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	At         time.Time `json:"at"`
}

type CourtSlotsEvent struct {
	CourtID    int64     `json:"court_id"`
	FacilityID int64     `json:"facility_id"`
	Inserted   int       `json:"inserted"`
	Deleted    int       `json:"deleted"`
	At         time.Time `json:"at"`
}

type FacilityEvent struct {
	FacilityID int64     `json:"facility_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	At         time.Time `json:"at"`
}
