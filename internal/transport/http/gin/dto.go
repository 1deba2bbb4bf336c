package httpgin

import (
	"github.com/kirinyoku/courtbook/internal/domain"
	"github.com/kirinyoku/courtbook/internal/service/facility"
	"github.com/kirinyoku/courtbook/internal/service/profile"
	"github.com/kirinyoku/courtbook/internal/slotgrid"
)

type FacilityRequest struct {
	Name        string         `json:"name"`
	Location    string         `json:"location"`
	Image       *string        `json:"image"`
	Description *string        `json:"description"`
	Courts      []CourtRequest `json:"courts"`
}

// CourtRequest updates the court with ID, or creates one when ID is zero.
// Omitting slots keeps an existing court's slots.
type CourtRequest struct {
	ID    int64            `json:"id"`
	Name  string           `json:"court_name"`
	Type  domain.CourtType `json:"court_type"`
	Image *string          `json:"image"`
	Slots []slotgrid.Key   `json:"slots"`
}

func (r FacilityRequest) toInput() facility.FacilityInput {
	in := facility.FacilityInput{
		Name:        r.Name,
		Location:    r.Location,
		Image:       r.Image,
		Description: r.Description,
		Courts:      make([]facility.CourtInput, 0, len(r.Courts)),
	}

	for _, c := range r.Courts {
		in.Courts = append(in.Courts, facility.CourtInput{
			ID:    c.ID,
			Name:  c.Name,
			Type:  c.Type,
			Image: c.Image,
			Slots: c.Slots,
		})
	}

	return in
}

type ProfileRequest struct {
	Name        string  `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	Bio         *string `json:"bio"`
	Image       *string `json:"image"`
}

func (r ProfileRequest) toInput() profile.Input {
	return profile.Input{
		Name:        r.Name,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
		Bio:         r.Bio,
		Image:       r.Image,
	}
}

type CreateFacilityResponse struct {
	FacilityID int64 `json:"facility_id"`
}

type SaveSlotsRequest struct {
	Slots []slotgrid.Key `json:"slots" binding:"required"`
}

type SaveSlotsResponse struct {
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
}

type CreateBookingRequest struct {
	SlotID int64 `json:"slot_id" binding:"required,gt=0"`
}

type EditEntry struct {
	Day       domain.Weekday `json:"day"`
	Period    domain.Period  `json:"period"`
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
	State     string         `json:"state"`
	Selected  bool           `json:"selected"`
	Locked    bool           `json:"locked"`
	SlotID    *int64         `json:"slot_id,omitempty"`
}

type EditModelResponse struct {
	Court   domain.Court       `json:"court"`
	Entries []EditEntry        `json:"entries"`
	Orphans []domain.CourtSlot `json:"orphans"`
}

func newEditModelResponse(c *domain.Court, m slotgrid.EditModel) EditModelResponse {
	entries := m.Entries()

	resp := EditModelResponse{
		Court:   *c,
		Entries: make([]EditEntry, 0, len(entries)),
		Orphans: m.Orphans(),
	}

	if resp.Orphans == nil {
		resp.Orphans = []domain.CourtSlot{}
	}

	for _, e := range entries {
		ee := EditEntry{
			Day:       e.Slot.Day,
			Period:    e.Slot.Period,
			StartTime: e.Slot.StartTime,
			EndTime:   e.Slot.EndTime,
			State:     e.State().String(),
			Selected:  e.Selected,
			Locked:    e.Locked(),
		}
		if e.Existing != nil {
			id := e.Existing.ID
			ee.SlotID = &id
		}
		resp.Entries = append(resp.Entries, ee)
	}

	return resp
}

type UploadResponse struct {
	URL string `json:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
