package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kirinyoku/courtbook/internal/domain"
	"github.com/kirinyoku/courtbook/internal/repository"
)

const courtColumns = `c.id, c.facility_id, c.court_name, c.court_type, c.image, c.created_at`

type CourtRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *CourtRepo) With(db DB) *CourtRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *CourtRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func scanCourt(row pgx.Row) (*domain.Court, error) {
	var c domain.Court
	if err := row.Scan(
		&c.ID,
		&c.FacilityID,
		&c.Name,
		&c.Type,
		&c.Image,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourtRepo) Create(ctx context.Context, c domain.Court) (int64, error) {
	const op = "postgres.CourtRepo.Create"

	var id int64
	if err := r.handle().QueryRow(ctx,
		`INSERT INTO courts (facility_id, court_name, court_type, image)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		c.FacilityID, c.Name, c.Type, c.Image,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *CourtRepo) Get(ctx context.Context, id int64) (*domain.Court, error) {
	const op = "postgres.CourtRepo.Get"

	c, err := scanCourt(r.handle().QueryRow(ctx,
		`SELECT `+courtColumns+` FROM courts c WHERE c.id = $1`,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return c, nil
}

// Update overwrites a court's fields. The court must belong to c.FacilityID.
func (r *CourtRepo) Update(ctx context.Context, c domain.Court) error {
	const op = "postgres.CourtRepo.Update"

	tag, err := r.handle().Exec(ctx,
		`UPDATE courts
		 SET court_name = $3, court_type = $4, image = $5
		 WHERE id = $1 AND facility_id = $2`,
		c.ID, c.FacilityID, c.Name, c.Type, c.Image,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrNotFound)
	}

	return nil
}

// Delete removes a court with its slots and booking history.
//
// Returns:
//   - error: repository.ErrActiveBookings if a slot of the court is actively booked.
//   - error: repository.ErrNotFound if the court does not exist.
func (r *CourtRepo) Delete(ctx context.Context, id int64) error {
	const op = "postgres.CourtRepo.Delete"

	db := r.handle()

	var active int64
	if err := db.QueryRow(ctx,
		`SELECT count(*)
		 FROM bookings b
		 JOIN court_slots s ON s.id = b.court_slot_id
		 WHERE s.court_id = $1 AND b.status`,
		id,
	).Scan(&active); err != nil {
		return wrapDBErr(op, err)
	}

	if active > 0 {
		return wrapDBErr(op, repository.ErrActiveBookings)
	}

	tag, err := db.Exec(ctx, `DELETE FROM courts WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrNotFound)
	}

	return nil
}

// ListByFacility returns a facility's courts in creation order.
func (r *CourtRepo) ListByFacility(ctx context.Context, facilityID int64) ([]domain.Court, error) {
	const op = "postgres.CourtRepo.ListByFacility"

	rows, err := r.handle().Query(ctx,
		`SELECT `+courtColumns+`
		 FROM courts c
		 WHERE c.facility_id = $1
		 ORDER BY c.created_at, c.id`,
		facilityID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	out := make([]domain.Court, 0)
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
