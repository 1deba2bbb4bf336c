package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	TimeFormat = "15:04"
	DateFormat = "2006-01-02"
)

type CourtType string

const (
	CourtIndoor  CourtType = "Indoor"
	CourtOutdoor CourtType = "Outdoor"
)

func (t CourtType) Valid() bool {
	return t == CourtIndoor || t == CourtOutdoor
}

type Facility struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	Image       *string    `json:"image,omitempty"`
	Description *string    `json:"description,omitempty"`
	OwnerID     *uuid.UUID `json:"owner_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// OwnedBy reports whether userID owns the facility. Legacy rows without an
// owner are owned by nobody.
func (f Facility) OwnedBy(userID uuid.UUID) bool {
	return f.OwnerID != nil && *f.OwnerID == userID
}

type Court struct {
	ID         int64     `json:"id"`
	FacilityID int64     `json:"facility_id"`
	Name       string    `json:"court_name"`
	Type       CourtType `json:"court_type"`
	Image      *string   `json:"image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CourtSlot is a canonical slot an owner enabled for a court.
type CourtSlot struct {
	ID        int64   `json:"id"`
	CourtID   int64   `json:"court_id"`
	DayOfWeek Weekday `json:"day_of_week"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	IsBooked  bool    `json:"is_booked"`
}

// Booking status true means active, false means cancelled.
type Booking struct {
	ID          int64     `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	CourtSlotID int64     `json:"court_slot_id"`
	BookingTime time.Time `json:"booking_time"`
	Status      bool      `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// User is a profile row. Rows are created on a user's first write with
// the ID and email from their token.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       *string   `json:"email,omitempty"`
	Name        *string   `json:"name,omitempty"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	Image       *string   `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  *string   `json:"name,omitempty"`
}

// BookingDetails is a booking joined with its slot, court and facility.
type BookingDetails struct {
	Booking  Booking      `json:"booking"`
	Slot     CourtSlot    `json:"slot"`
	Court    Court        `json:"court"`
	Facility Facility     `json:"facility"`
	User     *UserSummary `json:"user,omitempty"`
	Next     Projection   `json:"next"`
	Label    string       `json:"label"`
}

type FacilitySummary struct {
	Facility       Facility `json:"facility"`
	CourtCount     int64    `json:"court_count"`
	AvailableSlots int64    `json:"available_slots"`
}

type CourtSummary struct {
	Court          Court `json:"court"`
	TotalSlots     int64 `json:"total_slots"`
	AvailableSlots int64 `json:"available_slots"`
}

type FacilityDetails struct {
	Facility Facility       `json:"facility"`
	Courts   []CourtSummary `json:"courts"`
}

// Projection is a weekday resolved to its next calendar date.
type Projection struct {
	Date       time.Time `json:"date"`
	ISOKey     string    `json:"iso_key"`
	LongLabel  string    `json:"long_label"`
	ShortLabel string    `json:"short_label"`
}

type ScheduleDay struct {
	Day   Weekday     `json:"day"`
	Next  Projection  `json:"next"`
	Slots []CourtSlot `json:"slots"`
}

type CourtSchedule struct {
	Court Court         `json:"court"`
	Days  []ScheduleDay `json:"days"`
}

type Session struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

const RoleAdmin = "admin"

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
