package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kirinyoku/courtbook/internal/domain"
	"github.com/kirinyoku/courtbook/internal/repository"
)

const facilityColumns = `f.id, f.name, f.location, f.image, f.description, f.owner_id, f.created_at`

type FacilityRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *FacilityRepo) With(db DB) *FacilityRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *FacilityRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func scanFacility(row pgx.Row) (*domain.Facility, error) {
	var f domain.Facility
	if err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Location,
		&f.Image,
		&f.Description,
		&f.OwnerID,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a facility owned by f.OwnerID.
//
// Returns:
//   - int64: the new facility ID.
//   - error: repository.ErrReferenceMissing if the owner does not exist.
func (r *FacilityRepo) Create(ctx context.Context, f domain.Facility) (int64, error) {
	const op = "postgres.FacilityRepo.Create"

	var id int64
	if err := r.handle().QueryRow(ctx,
		`INSERT INTO facilities (name, location, image, description, owner_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		f.Name, f.Location, f.Image, f.Description, f.OwnerID,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *FacilityRepo) Get(ctx context.Context, id int64) (*domain.Facility, error) {
	const op = "postgres.FacilityRepo.Get"

	f, err := scanFacility(r.handle().QueryRow(ctx,
		`SELECT `+facilityColumns+` FROM facilities f WHERE f.id = $1`,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return f, nil
}

// GetForUpdate reads a facility and locks its row until the transaction ends.
func (r *FacilityRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Facility, error) {
	const op = "postgres.FacilityRepo.GetForUpdate"

	f, err := scanFacility(r.handle().QueryRow(ctx,
		`SELECT `+facilityColumns+` FROM facilities f WHERE f.id = $1 FOR UPDATE`,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return f, nil
}

// Update overwrites the editable fields of a facility owned by ownerID.
//
// Returns:
//   - error: repository.ErrNotOwner if no facility with that ID is owned by ownerID.
func (r *FacilityRepo) Update(ctx context.Context, f domain.Facility, ownerID uuid.UUID) error {
	const op = "postgres.FacilityRepo.Update"

	tag, err := r.handle().Exec(ctx,
		`UPDATE facilities
		 SET name = $3, location = $4, image = $5, description = $6
		 WHERE id = $1 AND owner_id = $2`,
		f.ID, ownerID, f.Name, f.Location, f.Image, f.Description,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrNotOwner)
	}

	return nil
}

// Claim assigns an owner to a facility that has none.
//
// Returns:
//   - error: repository.ErrConflict if the facility already has an owner.
func (r *FacilityRepo) Claim(ctx context.Context, id int64, ownerID uuid.UUID) error {
	const op = "postgres.FacilityRepo.Claim"

	tag, err := r.handle().Exec(ctx,
		`UPDATE facilities SET owner_id = $2 WHERE id = $1 AND owner_id IS NULL`,
		id, ownerID,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrConflict)
	}

	return nil
}

// Delete removes a facility together with its courts, slots and booking
// history. It refuses while any slot of the facility has an active booking.
//
// Returns:
//   - error: repository.ErrActiveBookings if an active booking exists.
//   - error: repository.ErrNotFound if the facility does not exist.
func (r *FacilityRepo) Delete(ctx context.Context, id int64) error {
	const op = "postgres.FacilityRepo.Delete"

	db := r.handle()

	var active int64
	if err := db.QueryRow(ctx,
		`SELECT count(*)
		 FROM bookings b
		 JOIN court_slots s ON s.id = b.court_slot_id
		 JOIN courts c ON c.id = s.court_id
		 WHERE c.facility_id = $1 AND b.status`,
		id,
	).Scan(&active); err != nil {
		return wrapDBErr(op, err)
	}

	if active > 0 {
		return wrapDBErr(op, repository.ErrActiveBookings)
	}

	tag, err := db.Exec(ctx, `DELETE FROM facilities WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrNotFound)
	}

	return nil
}

// ListByOwner returns the facilities of ownerID, newest first.
func (r *FacilityRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Facility, error) {
	const op = "postgres.FacilityRepo.ListByOwner"

	rows, err := r.handle().Query(ctx,
		`SELECT `+facilityColumns+`
		 FROM facilities f
		 WHERE f.owner_id = $1
		 ORDER BY f.created_at DESC, f.id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	out := make([]domain.Facility, 0)
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
