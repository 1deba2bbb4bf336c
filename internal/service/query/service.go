package query

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/kirinyoku/courtbook/internal/domain"
	"github.com/kirinyoku/courtbook/internal/repository"
	postgresrepo "github.com/kirinyoku/courtbook/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/courtbook/internal/repository/redis"
	"github.com/kirinyoku/courtbook/internal/slotgrid"
)

// Booking labels.
const (
	LabelUpcoming  = "Upcoming"
	LabelActive    = "Active"
	LabelCancelled = "Cancelled"
)

type Config struct {
	FacilityListTTL    time.Duration
	FacilityDetailsTTL time.Duration
	CourtSlotsTTL      time.Duration
}

type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	cfg   Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.FacilityListTTL <= 0 {
		cfg.FacilityListTTL = 30 * time.Second
	}

	if cfg.FacilityDetailsTTL <= 0 {
		cfg.FacilityDetailsTTL = 30 * time.Second
	}

	if cfg.CourtSlotsTTL <= 0 {
		cfg.CourtSlotsTTL = 15 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

// ListFacilities returns every facility with its court count and the number
// of slots still free, newest first.
func (s *Service) ListFacilities(ctx context.Context) ([]domain.FacilitySummary, error) {
	const op = "service.query.ListFacilities"

	out, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyFacilityList(),
		s.cfg.FacilityListTTL,
		func(ctx context.Context) ([]domain.FacilitySummary, error) {
			return s.store.Query().ListFacilitySummaries(ctx)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// GetFacility retrieves a facility with its courts and their slot counters.
//
// Parameters:
//   - ctx: request-scoped context.
//   - id: ID of the facility.
//
// Returns:
//   - *domain.FacilityDetails: the facility and its courts.
//   - error: query.ErrFacilityNotFound if the facility does not exist.
func (s *Service) GetFacility(ctx context.Context, id int64) (*domain.FacilityDetails, error) {
	const op = "service.query.GetFacility"

	details, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyFacilityDetails(id),
		s.cfg.FacilityDetailsTTL,
		func(ctx context.Context) (domain.FacilityDetails, error) {
			d, err := s.store.Query().FacilityDetails(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.FacilityDetails{}, ErrFacilityNotFound
				}

				return domain.FacilityDetails{}, err
			}

			return *d, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &details, nil
}

type courtSlots struct {
	Court domain.Court       `json:"court"`
	Slots []domain.CourtSlot `json:"slots"`
}

// CourtSchedule returns a court's slots grouped by weekday. Each day carries
// its next date after now, days are ordered by that date and slots by
// their place in the canonical grid.
//
// Returns:
//   - error: query.ErrCourtNotFound if the court does not exist.
func (s *Service) CourtSchedule(ctx context.Context, courtID int64, now time.Time) (*domain.CourtSchedule, error) {
	const op = "service.query.CourtSchedule"

	cs, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyCourtSlots(courtID),
		s.cfg.CourtSlotsTTL,
		func(ctx context.Context) (courtSlots, error) {
			c, err := s.store.Courts().Get(ctx, courtID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return courtSlots{}, ErrCourtNotFound
				}

				return courtSlots{}, err
			}

			slots, err := s.store.Slots().ListByCourt(ctx, courtID)
			if err != nil {
				return courtSlots{}, err
			}

			return courtSlots{Court: *c, Slots: slots}, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &domain.CourtSchedule{
		Court: cs.Court,
		Days:  Schedule(cs.Slots, now),
	}, nil
}

// Schedule groups slots by weekday, projects each day from now and orders
// the days by date. Days without slots are omitted. Slots with an unknown
// weekday are dropped.
func Schedule(slots []domain.CourtSlot, now time.Time) []domain.ScheduleDay {
	byDay := make(map[domain.Weekday][]domain.CourtSlot)
	for _, sl := range slots {
		if !sl.DayOfWeek.Valid() {
			continue
		}
		byDay[sl.DayOfWeek] = append(byDay[sl.DayOfWeek], sl)
	}

	days := make([]domain.ScheduleDay, 0, len(byDay))
	for day, ds := range byDay {
		slotgrid.SortSlots(ds)
		days = append(days, domain.ScheduleDay{
			Day:   day,
			Next:  slotgrid.NextOccurrence(day, now),
			Slots: ds,
		})
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Next.Date.Before(days[j].Next.Date)
	})

	return days
}

// UserBookings returns the caller's bookings, newest first, each with the
// next date of its slot and an Upcoming or Cancelled label.
func (s *Service) UserBookings(ctx context.Context, sess domain.Session, now time.Time) ([]domain.BookingDetails, error) {
	const op = "service.query.UserBookings"

	out, err := s.store.Query().BookingsForUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	decorate(out, now, LabelUpcoming)

	return out, nil
}

// OwnerBookings returns bookings made against the caller's facilities with
// the booker's summary, labelled Active or Cancelled.
func (s *Service) OwnerBookings(ctx context.Context, sess domain.Session, now time.Time) ([]domain.BookingDetails, error) {
	const op = "service.query.OwnerBookings"

	out, err := s.store.Query().BookingsForOwner(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	decorate(out, now, LabelActive)

	return out, nil
}

func decorate(bookings []domain.BookingDetails, now time.Time, activeLabel string) {
	for i := range bookings {
		b := &bookings[i]
		if b.Slot.DayOfWeek.Valid() {
			b.Next = slotgrid.NextOccurrence(b.Slot.DayOfWeek, now)
		}
		if b.Booking.Status {
			b.Label = activeLabel
		} else {
			b.Label = LabelCancelled
		}
	}
}

// PeriodSlots is one period of a day in the canonical grid.
type PeriodSlots struct {
	Period domain.Period   `json:"period"`
	Slots  []slotgrid.Slot `json:"slots"`
}

type GridDay struct {
	Day     domain.Weekday `json:"day"`
	Periods []PeriodSlots  `json:"periods"`
}

// Grid returns the canonical grid grouped by day and period. An empty day
// returns the whole week.
//
// Returns:
//   - error: query.ErrInvalidDay if day is not a weekday name.
func Grid(day string) ([]GridDay, error) {
	days := domain.Week[:]
	if day != "" {
		d, err := domain.ParseWeekday(day)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDay, day)
		}
		days = []domain.Weekday{d}
	}

	out := make([]GridDay, 0, len(days))
	for _, d := range days {
		gd := GridDay{Day: d, Periods: make([]PeriodSlots, 0, len(domain.Periods))}
		slots := slotgrid.ForDay(d)
		for _, p := range domain.Periods {
			ps := PeriodSlots{Period: p}
			for _, sl := range slots {
				if sl.Period == p {
					ps.Slots = append(ps.Slots, sl)
				}
			}
			gd.Periods = append(gd.Periods, ps)
		}
		out = append(out, gd)
	}

	return out, nil
}
