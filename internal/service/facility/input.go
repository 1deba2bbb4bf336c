package facility

import (
	"fmt"
	"strings"

	"github.com/kirinyoku/courtbook/internal/domain"
	"github.com/kirinyoku/courtbook/internal/slotgrid"
)

type FacilityInput struct {
	Name        string
	Location    string
	Image       *string
	Description *string
	Courts      []CourtInput
}

// CourtInput describes a court to create (ID 0) or update. A nil Slots
// leaves an existing court's slots untouched.
type CourtInput struct {
	ID    int64
	Name  string
	Type  domain.CourtType
	Image *string
	Slots []slotgrid.Key
}

// normalize trims the input, applies defaults and validates it.
func (in FacilityInput) normalize() (FacilityInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	in.Image = trimmedOrNil(in.Image)
	in.Description = trimmedOrNil(in.Description)

	if in.Name == "" {
		return in, &ValidationError{Field: "name", Reason: "required"}
	}

	if in.Location == "" {
		return in, &ValidationError{Field: "location", Reason: "required"}
	}

	courts := make([]CourtInput, 0, len(in.Courts))
	for i, c := range in.Courts {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			if c.ID != 0 {
				return in, &ValidationError{
					Field:  fmt.Sprintf("courts[%d].name", i),
					Reason: "required",
				}
			}
			// Blank new rows are dropped, as an empty form row would be.
			continue
		}

		if c.Type == "" {
			c.Type = domain.CourtIndoor
		}
		if !c.Type.Valid() {
			return in, &ValidationError{
				Field:  fmt.Sprintf("courts[%d].type", i),
				Reason: fmt.Sprintf("must be %s or %s", domain.CourtIndoor, domain.CourtOutdoor),
			}
		}

		c.Image = trimmedOrNil(c.Image)

		for _, k := range c.Slots {
			if _, ok := slotgrid.Lookup(k); !ok {
				return in, &ValidationError{
					Field:  fmt.Sprintf("courts[%d].slots", i),
					Reason: fmt.Sprintf("unknown slot %s", k),
				}
			}
		}

		courts = append(courts, c)
	}

	if len(courts) == 0 {
		return in, &ValidationError{Field: "courts", Reason: "at least one named court is required"}
	}

	in.Courts = courts

	return in, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
