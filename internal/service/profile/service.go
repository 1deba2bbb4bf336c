package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/kirinyoku/courtbook/internal/domain"
	postgresrepo "github.com/kirinyoku/courtbook/internal/repository/postgres"
	"github.com/kirinyoku/courtbook/internal/uow"
)

// Input holds the editable profile fields. Blank optional fields are
// cleared.
type Input struct {
	Name        string
	PhoneNumber *string
	Address     *string
	Bio         *string
	Image       *string
}

func (in Input) apply(u *domain.User) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ErrNameRequired
	}

	u.Name = &name
	u.PhoneNumber = trimmedOrNil(in.PhoneNumber)
	u.Address = trimmedOrNil(in.Address)
	u.Bio = trimmedOrNil(in.Bio)
	u.Image = trimmedOrNil(in.Image)

	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

type Service struct {
	store *postgresrepo.Store
	uow   *uow.UoW
}

func New(store *postgresrepo.Store) *Service {
	return &Service{
		store: store,
		uow:   uow.NewUoW(store),
	}
}

// Get returns the caller's profile, creating the row on first use.
func (s *Service) Get(ctx context.Context, sess domain.Session) (*domain.User, error) {
	const op = "service.profile.Get"

	var out *domain.User

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		_ func(uow.AfterCommit),
	) error {
		users := s.store.Users().With(tx)

		if err := users.Ensure(ctx, sess.UserID, sess.Email); err != nil {
			return err
		}

		u, err := users.Get(ctx, sess.UserID)
		if err != nil {
			return err
		}

		out = u
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// Update overwrites the caller's profile.
//
// Returns:
//   - error: profile.ErrNameRequired if the name is blank.
func (s *Service) Update(ctx context.Context, sess domain.Session, in Input) (*domain.User, error) {
	const op = "service.profile.Update"

	u := domain.User{ID: sess.UserID}
	if err := in.apply(&u); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	var out *domain.User

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		_ func(uow.AfterCommit),
	) error {
		users := s.store.Users().With(tx)

		if err := users.Ensure(ctx, sess.UserID, sess.Email); err != nil {
			return err
		}

		updated, err := users.UpdateProfile(ctx, u)
		if err != nil {
			return err
		}

		out = updated
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}
