package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kirinyoku/courtbook/internal/domain"
	"github.com/kirinyoku/courtbook/internal/events"
	"github.com/kirinyoku/courtbook/internal/repository"
	postgresrepo "github.com/kirinyoku/courtbook/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/courtbook/internal/repository/redis"
	"github.com/kirinyoku/courtbook/internal/uow"
)

// Court change kinds sent on the pub/sub channel.
const (
	ChangeBooked     = "booked"
	ChangeCancelled  = "cancelled"
	ChangeReconciled = "reconciled"
)

type CourtNotifier interface {
	PublishCourtChanged(ctx context.Context, kind string, courtID, facilityID int64) error
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type RateLimiter interface {
	Allow(ctx context.Context, id string) (redisrepo.Decision, error)
}

type Service struct {
	store   *postgresrepo.Store
	cache   *redisrepo.Cache
	pubsub  CourtNotifier
	limiter RateLimiter
	events  EventPublisher
	uow     *uow.UoW
	log     *slog.Logger
	now     func() time.Time
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub CourtNotifier,
	limiter RateLimiter,
	publisher EventPublisher,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		store:   store,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		events:  publisher,
		uow:     uow.NewUoW(store),
		log:     log.With(slog.String("service", "booking")),
		now:     time.Now,
	}
}

// Book reserves a slot for the session's user.
//
// Parameters:
//   - ctx: request-scoped context.
//   - sess: the caller.
//   - slotID: ID of the court slot to book.
//
// Returns:
//   - *domain.Booking: the created booking.
//   - error: booking.ErrSlotNotFound if the slot does not exist.
//   - error: booking.ErrSlotUnavailable if the slot is already booked.
//   - error: *booking.RateLimitedError if the user books too often.
//   - error: *booking.PartialWriteError if the slot flag could not be set.
func (s *Service) Book(ctx context.Context, sess domain.Session, slotID int64) (*domain.Booking, error) {
	const op = "service.booking.Book"

	if err := s.allow(ctx, sess.UserID); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	var out *Transition

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		if err := s.store.Users().With(tx).Ensure(ctx, sess.UserID, sess.Email); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		tr, err := Book(ctx, s.store.Bookings().With(tx), sess.UserID, slotID, s.now())
		if err != nil {
			return err
		}

		court, err := s.store.Courts().With(tx).Get(ctx, tr.Slot.CourtID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		out = tr

		after(func(ctx context.Context) {
			s.notify(ctx, ChangeBooked, tr.Slot.CourtID, court.FacilityID)
			s.publish(ctx, events.KeyBookingCreated, bookingEvent(tr, court.FacilityID))
		})

		return nil
	})
	if err != nil {
		s.logPartial(err)
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &out.Booking, nil
}

// Cancel deactivates a booking and frees its slot. The booker, the owner of
// the facility and admins may cancel.
//
// Returns:
//   - error: booking.ErrBookingNotFound if the booking does not exist.
//   - error: booking.ErrNotAllowed if the caller may not cancel it.
//   - error: booking.ErrBookingNotActive if it is already cancelled.
func (s *Service) Cancel(ctx context.Context, sess domain.Session, bookingID int64) (*domain.Booking, error) {
	const op = "service.booking.Cancel"

	var out *Transition

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		repo := s.store.Bookings().With(tx)

		bc, err := repo.GetBookingContext(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrBookingNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		if !mayCancel(sess, bc) {
			return fmt.Errorf("%s:%w", op, ErrNotAllowed)
		}

		tr, err := Cancel(ctx, repo, bookingID)
		if err != nil {
			return err
		}

		out = tr

		after(func(ctx context.Context) {
			s.notify(ctx, ChangeCancelled, bc.CourtID, bc.FacilityID)
			s.publish(ctx, events.KeyBookingCancelled, bookingEvent(tr, bc.FacilityID))
		})

		return nil
	})
	if err != nil {
		s.logPartial(err)
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &out.Booking, nil
}

func mayCancel(sess domain.Session, bc *postgresrepo.BookingContext) bool {
	if sess.IsAdmin() || bc.Booking.UserID == sess.UserID {
		return true
	}
	return bc.FacilityOwner != nil && *bc.FacilityOwner == sess.UserID
}

// ReconcileReport lists the slots a reconciliation pass corrected.
type ReconcileReport struct {
	Released []int64 `json:"released"`
	Claimed  []int64 `json:"claimed"`
}

// Reconcile repairs slots whose booked flag disagrees with their bookings.
// Slots flagged booked without an active booking are released, and slots
// with an active booking are flagged booked.
func (s *Service) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	const op = "service.booking.Reconcile"

	report := &ReconcileReport{Released: []int64{}, Claimed: []int64{}}

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		report.Released = report.Released[:0]
		report.Claimed = report.Claimed[:0]

		mismatches, err := s.store.Bookings().With(tx).FindMismatches(ctx)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		slots := s.store.Slots().With(tx)
		for _, m := range mismatches {
			booked := m.ActiveBookings > 0
			if err := slots.SetBooked(ctx, m.SlotID, booked); err != nil {
				return fmt.Errorf("%s:%w", op, err)
			}

			if booked {
				report.Claimed = append(report.Claimed, m.SlotID)
			} else {
				report.Released = append(report.Released, m.SlotID)
			}

			after(func(ctx context.Context) {
				s.notify(ctx, ChangeReconciled, m.CourtID, m.FacilityID)
			})
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if n := len(report.Released) + len(report.Claimed); n > 0 {
		s.log.Warn("reconciled slot flags",
			slog.Any("released", report.Released),
			slog.Any("claimed", report.Claimed),
		)
	}

	return report, nil
}

func (s *Service) allow(ctx context.Context, userID uuid.UUID) error {
	if s.limiter == nil {
		return nil
	}

	d, err := s.limiter.Allow(ctx, userID.String())
	if err != nil {
		s.log.Warn("rate limiter unavailable", slog.Any("err", err))
		return nil
	}

	if !d.Allowed {
		return &RateLimitedError{RetryAfter: d.RetryAfter}
	}

	return nil
}

func (s *Service) notify(ctx context.Context, kind string, courtID, facilityID int64) {
	if err := s.cache.InvalidateCourt(ctx, courtID, facilityID); err != nil {
		s.log.Warn("cache invalidation failed", slog.Int64("court_id", courtID), slog.Any("err", err))
	}

	if s.pubsub == nil {
		return
	}

	if err := s.pubsub.PublishCourtChanged(ctx, kind, courtID, facilityID); err != nil {
		s.log.Warn("court change publish failed", slog.Int64("court_id", courtID), slog.Any("err", err))
	}
}

func (s *Service) publish(ctx context.Context, key string, v any) {
	if s.events == nil {
		return
	}

	if err := s.events.PublishJSON(ctx, key, v); err != nil {
		s.log.Warn("event publish failed", slog.String("key", key), slog.Any("err", err))
	}
}

func (s *Service) logPartial(err error) {
	var pw *PartialWriteError
	if errors.As(err, &pw) {
		s.log.Error("booking transition rolled back after partial write",
			slog.String("step", pw.Step),
			slog.Int64("booking_id", pw.BookingID),
			slog.Int64("slot_id", pw.SlotID),
			slog.Any("err", pw.Err),
		)
	}
}

func bookingEvent(tr *Transition, facilityID int64) events.BookingEvent {
	return events.BookingEvent{
		BookingID:  tr.Booking.ID,
		UserID:     tr.Booking.UserID,
		SlotID:     tr.Slot.ID,
		CourtID:    tr.Slot.CourtID,
		FacilityID: facilityID,
		Day:        string(tr.Slot.DayOfWeek),
		StartTime:  tr.Slot.StartTime,
		EndTime:    tr.Slot.EndTime,
		At:         time.Now(),
	}
}
