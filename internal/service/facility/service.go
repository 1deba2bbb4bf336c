package facility

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kirinyoku/courtbook/internal/domain"
	"github.com/kirinyoku/courtbook/internal/events"
	"github.com/kirinyoku/courtbook/internal/repository"
	postgresrepo "github.com/kirinyoku/courtbook/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/courtbook/internal/repository/redis"
	"github.com/kirinyoku/courtbook/internal/slotgrid"
	"github.com/kirinyoku/courtbook/internal/uow"
)

// Slot save policies.
const (
	SaveDiff    = "diff"
	SaveReplace = "replace"
)

const changeSlots = "slots_updated"

type Config struct {
	SavePolicy       string
	AllowLegacyClaim bool
}

type CourtNotifier interface {
	PublishCourtChanged(ctx context.Context, kind string, courtID, facilityID int64) error
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	pubsub CourtNotifier
	events EventPublisher
	uow    *uow.UoW
	cfg    Config
	log    *slog.Logger
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub CourtNotifier,
	publisher EventPublisher,
	cfg Config,
	log *slog.Logger,
) *Service {
	if cfg.SavePolicy != SaveReplace {
		cfg.SavePolicy = SaveDiff
	}

	if log == nil {
		log = slog.Default()
	}

	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		events: publisher,
		uow:    uow.NewUoW(store),
		cfg:    cfg,
		log:    log.With(slog.String("service", "facility")),
	}
}

// Create stores a facility with its courts and their initial slots, owned
// by the caller.
//
// Parameters:
//   - ctx: request-scoped context.
//   - sess: the caller, who becomes the owner.
//   - in: facility fields and courts.
//
// Returns:
//   - int64: the ID of the created facility.
//   - error: *facility.ValidationError if the input is rejected.
func (s *Service) Create(ctx context.Context, sess domain.Session, in FacilityInput) (int64, error) {
	const op = "service.facility.Create"

	in, err := in.normalize()
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	var facilityID int64

	err = s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		if err := s.store.Users().With(tx).Ensure(ctx, sess.UserID, sess.Email); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		owner := sess.UserID

		id, err := s.store.Facilities().With(tx).Create(ctx, domain.Facility{
			Name:        in.Name,
			Location:    in.Location,
			Image:       in.Image,
			Description: in.Description,
			OwnerID:     &owner,
		})
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		for _, c := range in.Courts {
			if _, err := s.createCourt(ctx, tx, id, c); err != nil {
				return fmt.Errorf("%s:%w", op, err)
			}
		}

		facilityID = id

		after(func(ctx context.Context) {
			s.invalidate(ctx, id)
		})

		return nil
	})
	if err != nil {
		return 0, err
	}

	return facilityID, nil
}

// Update edits an owned facility. Listed courts with an ID are updated and
// the rest are created. Slots of existing courts are saved through the
// configured policy. Courts missing from the input are left as they are.
//
// Returns:
//   - error: facility.ErrFacilityNotFound, facility.ErrCourtNotFound.
//   - error: facility.ErrNotOwner if the caller does not own the facility.
//   - error: facility.ErrBookedSlotsDeselected if a booked slot would be removed.
func (s *Service) Update(ctx context.Context, sess domain.Session, facilityID int64, in FacilityInput) error {
	const op = "service.facility.Update"

	in, err := in.normalize()
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		f, err := s.owned(ctx, tx, sess, facilityID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		f.Name, f.Location, f.Image, f.Description = in.Name, in.Location, in.Image, in.Description
		if err := s.store.Facilities().With(tx).Update(ctx, *f, sess.UserID); err != nil {
			return fmt.Errorf("%s:%w", op, mapRepoErr(err))
		}

		var (
			courtIDs []int64
			changes  []events.CourtSlotsEvent
		)

		for _, c := range in.Courts {
			if c.ID == 0 {
				id, err := s.createCourt(ctx, tx, facilityID, c)
				if err != nil {
					return fmt.Errorf("%s:%w", op, err)
				}
				courtIDs = append(courtIDs, id)
				continue
			}

			if err := s.store.Courts().With(tx).Update(ctx, domain.Court{
				ID:         c.ID,
				FacilityID: facilityID,
				Name:       c.Name,
				Type:       c.Type,
				Image:      c.Image,
			}); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("%s:%w", op, ErrCourtNotFound)
				}
				return fmt.Errorf("%s:%w", op, err)
			}
			courtIDs = append(courtIDs, c.ID)

			if c.Slots == nil {
				continue
			}

			ev, err := s.saveSlots(ctx, tx, c.ID, c.Slots)
			if err != nil {
				return fmt.Errorf("%s:%w", op, err)
			}
			if ev.Inserted+ev.Deleted > 0 {
				ev.FacilityID = facilityID
				changes = append(changes, ev)
			}
		}

		after(func(ctx context.Context) {
			s.invalidate(ctx, facilityID, courtIDs...)
			for _, ev := range changes {
				s.notify(ctx, ev.CourtID, facilityID)
				s.publish(ctx, events.KeyCourtSlotsUpdated, ev)
			}
		})

		return nil
	})
}

// Delete removes an owned facility with its courts, slots and booking
// history.
//
// Returns:
//   - error: facility.ErrActiveBookings while any booking is active.
func (s *Service) Delete(ctx context.Context, sess domain.Session, facilityID int64) error {
	const op = "service.facility.Delete"

	return s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		if _, err := s.owned(ctx, tx, sess, facilityID); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		courts, err := s.store.Courts().With(tx).ListByFacility(ctx, facilityID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		if err := s.store.Facilities().With(tx).Delete(ctx, facilityID); err != nil {
			return fmt.Errorf("%s:%w", op, mapRepoErr(err))
		}

		courtIDs := make([]int64, len(courts))
		for i, c := range courts {
			courtIDs[i] = c.ID
		}

		after(func(ctx context.Context) {
			s.invalidate(ctx, facilityID, courtIDs...)
			s.publish(ctx, events.KeyFacilityDeleted, events.FacilityEvent{
				FacilityID: facilityID,
				OwnerID:    sess.UserID,
				At:         time.Now(),
			})
		})

		return nil
	})
}

// DeleteCourt removes a court of an owned facility.
//
// Returns:
//   - error: facility.ErrActiveBookings while any of its slots is booked.
func (s *Service) DeleteCourt(ctx context.Context, sess domain.Session, courtID int64) error {
	const op = "service.facility.DeleteCourt"

	return s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		c, err := s.ownedCourt(ctx, tx, sess, courtID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		if err := s.store.Courts().With(tx).Delete(ctx, courtID); err != nil {
			return fmt.Errorf("%s:%w", op, mapRepoErr(err))
		}

		after(func(ctx context.Context) {
			s.invalidate(ctx, c.FacilityID, courtID)
			s.notify(ctx, courtID, c.FacilityID)
		})

		return nil
	})
}

// ListOwned returns the caller's facilities, newest first.
func (s *Service) ListOwned(ctx context.Context, sess domain.Session) ([]domain.Facility, error) {
	const op = "service.facility.ListOwned"

	out, err := s.store.Facilities().ListByOwner(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// EditModel returns an owned court and the reconciled state of its week.
func (s *Service) EditModel(ctx context.Context, sess domain.Session, courtID int64) (*domain.Court, slotgrid.EditModel, error) {
	const op = "service.facility.EditModel"

	db := s.store.Slots()

	c, err := s.ownedCourt(ctx, nil, sess, courtID)
	if err != nil {
		return nil, slotgrid.EditModel{}, fmt.Errorf("%s:%w", op, err)
	}

	slots, err := db.ListByCourt(ctx, courtID)
	if err != nil {
		return nil, slotgrid.EditModel{}, fmt.Errorf("%s:%w", op, err)
	}

	return c, slotgrid.BuildEditModel(slots), nil
}

// SaveCourtSlots makes keys the exact set of enabled canonical slots of an
// owned court.
//
// Parameters:
//   - ctx: request-scoped context.
//   - sess: the caller.
//   - courtID: court to save.
//   - keys: canonical slots that should be enabled.
//
// Returns:
//   - events.CourtSlotsEvent: how many rows were inserted and deleted.
//   - error: *facility.ValidationError for keys outside the grid.
//   - error: facility.ErrBookedSlotsDeselected if a booked slot is not in keys.
//   - error: facility.ErrReplaceWithBookings under the replace policy while
//     the court has booked slots.
func (s *Service) SaveCourtSlots(
	ctx context.Context,
	sess domain.Session,
	courtID int64,
	keys []slotgrid.Key,
) (events.CourtSlotsEvent, error) {
	const op = "service.facility.SaveCourtSlots"

	var out events.CourtSlotsEvent

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		c, err := s.ownedCourt(ctx, tx, sess, courtID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		ev, err := s.saveSlots(ctx, tx, courtID, keys)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		ev.FacilityID = c.FacilityID
		out = ev

		if ev.Inserted+ev.Deleted == 0 {
			return nil
		}

		after(func(ctx context.Context) {
			s.notify(ctx, courtID, c.FacilityID)
			s.publish(ctx, events.KeyCourtSlotsUpdated, ev)
		})

		return nil
	})
	if err != nil {
		return events.CourtSlotsEvent{}, err
	}

	return out, nil
}

// Claim makes the caller the owner of a facility stored without one.
//
// Returns:
//   - error: facility.ErrNotOwner when legacy claims are disabled.
//   - error: facility.ErrAlreadyOwned if the facility has an owner.
func (s *Service) Claim(ctx context.Context, sess domain.Session, facilityID int64) error {
	const op = "service.facility.Claim"

	if !s.cfg.AllowLegacyClaim {
		return fmt.Errorf("%s:%w", op, ErrNotOwner)
	}

	return s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		if _, err := s.store.Facilities().With(tx).GetForUpdate(ctx, facilityID); err != nil {
			return fmt.Errorf("%s:%w", op, mapRepoErr(err))
		}

		if err := s.store.Users().With(tx).Ensure(ctx, sess.UserID, sess.Email); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		if err := s.store.Facilities().With(tx).Claim(ctx, facilityID, sess.UserID); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s:%w", op, ErrAlreadyOwned)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		after(func(ctx context.Context) {
			s.log.Info("legacy facility claimed",
				slog.Int64("facility_id", facilityID),
				slog.String("owner_id", sess.UserID.String()),
			)
			s.invalidate(ctx, facilityID)
		})

		return nil
	})
}

func (s *Service) createCourt(ctx context.Context, tx postgresrepo.DB, facilityID int64, c CourtInput) (int64, error) {
	id, err := s.store.Courts().With(tx).Create(ctx, domain.Court{
		FacilityID: facilityID,
		Name:       c.Name,
		Type:       c.Type,
		Image:      c.Image,
	})
	if err != nil {
		return 0, err
	}

	slots := make([]slotgrid.Slot, 0, len(c.Slots))
	seen := make(map[slotgrid.Key]bool, len(c.Slots))
	for _, k := range c.Slots {
		slot, ok := slotgrid.Lookup(k)
		if !ok || seen[k] {
			continue
		}
		seen[k] = true
		slots = append(slots, slot)
	}

	if err := s.store.Slots().With(tx).Insert(ctx, id, slots); err != nil {
		return 0, err
	}

	return id, nil
}

// saveSlots applies keys to a court's stored slots inside tx.
func (s *Service) saveSlots(ctx context.Context, tx postgresrepo.DB, courtID int64, keys []slotgrid.Key) (events.CourtSlotsEvent, error) {
	slots := s.store.Slots().With(tx)

	persisted, err := slots.ListByCourt(ctx, courtID)
	if err != nil {
		return events.CourtSlotsEvent{}, err
	}

	plan, replace, err := planSave(slotgrid.BuildEditModel(persisted), keys, s.cfg.SavePolicy)
	if err != nil {
		return events.CourtSlotsEvent{}, err
	}

	if replace {
		if err := slots.Replace(ctx, courtID, plan.ToInsert); err != nil {
			return events.CourtSlotsEvent{}, err
		}
	} else {
		if err := slots.Delete(ctx, courtID, plan.ToDelete); err != nil {
			if errors.Is(err, repository.ErrSlotBooked) {
				return events.CourtSlotsEvent{}, ErrBookedSlotsDeselected
			}
			return events.CourtSlotsEvent{}, err
		}
		if err := slots.Insert(ctx, courtID, plan.ToInsert); err != nil {
			return events.CourtSlotsEvent{}, err
		}
	}

	return events.CourtSlotsEvent{
		CourtID:  courtID,
		Inserted: len(plan.ToInsert),
		Deleted:  len(plan.ToDelete),
		At:       time.Now(),
	}, nil
}

// planSave selects keys on model and returns the write-set for policy.
// replace reports whether the plan is a full replacement.
func planSave(model slotgrid.EditModel, keys []slotgrid.Key, policy string) (plan slotgrid.Plan, replace bool, err error) {
	model, unknown := model.WithSelection(keys)
	if len(unknown) > 0 {
		return slotgrid.Plan{}, false, &ValidationError{
			Field:  "slots",
			Reason: fmt.Sprintf("unknown slot %s", unknown[0]),
		}
	}

	if policy == SaveReplace {
		if model.HasBooked() {
			return slotgrid.Plan{}, false, ErrReplaceWithBookings
		}
		return model.ReplacePlan(), true, nil
	}

	plan, err = model.Diff()
	if err != nil {
		return slotgrid.Plan{}, false, fmt.Errorf("%w: %w", ErrBookedSlotsDeselected, err)
	}

	return plan, false, nil
}

// owned loads a facility for update and checks the caller owns it. A nil
// tx reads outside a transaction.
func (s *Service) owned(ctx context.Context, tx postgresrepo.DB, sess domain.Session, facilityID int64) (*domain.Facility, error) {
	repo := s.store.Facilities()

	var (
		f   *domain.Facility
		err error
	)
	if tx != nil {
		f, err = repo.With(tx).GetForUpdate(ctx, facilityID)
	} else {
		f, err = repo.Get(ctx, facilityID)
	}
	if err != nil {
		return nil, mapRepoErr(err)
	}

	if !f.OwnedBy(sess.UserID) {
		return nil, ErrNotOwner
	}

	return f, nil
}

func (s *Service) ownedCourt(ctx context.Context, tx postgresrepo.DB, sess domain.Session, courtID int64) (*domain.Court, error) {
	repo := s.store.Courts()
	if tx != nil {
		repo = repo.With(tx)
	}

	c, err := repo.Get(ctx, courtID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}

	if _, err := s.owned(ctx, tx, sess, c.FacilityID); err != nil {
		return nil, err
	}

	return c, nil
}

func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrFacilityNotFound
	case errors.Is(err, repository.ErrActiveBookings):
		return ErrActiveBookings
	case errors.Is(err, repository.ErrNotOwner):
		return ErrNotOwner
	default:
		return err
	}
}

func (s *Service) invalidate(ctx context.Context, facilityID int64, courtIDs ...int64) {
	if err := s.cache.InvalidateFacility(ctx, facilityID, courtIDs...); err != nil {
		s.log.Warn("cache invalidation failed", slog.Int64("facility_id", facilityID), slog.Any("err", err))
	}
}

func (s *Service) notify(ctx context.Context, courtID, facilityID int64) {
	if err := s.cache.InvalidateCourt(ctx, courtID, facilityID); err != nil {
		s.log.Warn("cache invalidation failed", slog.Int64("court_id", courtID), slog.Any("err", err))
	}

	if s.pubsub == nil {
		return
	}

	if err := s.pubsub.PublishCourtChanged(ctx, changeSlots, courtID, facilityID); err != nil {
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
