package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kirinyoku/courtbook/internal/domain"
)

const userColumns = `u.id, u.email, u.name, u.phone_number, u.address, u.bio, u.image, u.created_at`

type UserRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *UserRepo) With(db DB) *UserRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *UserRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PhoneNumber,
		&u.Address,
		&u.Bio,
		&u.Image,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// Ensure creates the row for id if it does not exist yet. An empty email is
// stored as NULL; an existing row is left untouched.
//
// Returns:
//   - error: repository.ErrConflict if email belongs to another user.
func (r *UserRepo) Ensure(ctx context.Context, id uuid.UUID, email string) error {
	const op = "postgres.UserRepo.Ensure"

	if _, err := r.handle().Exec(ctx,
		`INSERT INTO users (id, email)
		 VALUES ($1, NULLIF($2, ''))
		 ON CONFLICT (id) DO NOTHING`,
		id, email,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *UserRepo) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const op = "postgres.UserRepo.Get"

	u, err := scanUser(r.handle().QueryRow(ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.id = $1`,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return u, nil
}

// UpdateProfile overwrites the editable profile fields and returns the row.
//
// Returns:
//   - error: repository.ErrNotFound if the user does not exist.
func (r *UserRepo) UpdateProfile(ctx context.Context, u domain.User) (*domain.User, error) {
	const op = "postgres.UserRepo.UpdateProfile"

	out, err := scanUser(r.handle().QueryRow(ctx,
		`UPDATE users AS u
		 SET name = $2, phone_number = $3, address = $4, bio = $5, image = $6
		 WHERE u.id = $1
		 RETURNING `+userColumns,
		u.ID, u.Name, u.PhoneNumber, u.Address, u.Bio, u.Image,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
