package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kirinyoku/courtbook/internal/domain"
	"github.com/kirinyoku/courtbook/internal/repository"
	"github.com/kirinyoku/courtbook/internal/slotgrid"
)

const slotColumns = `s.id, s.court_id, s.day_of_week, s.start_time, s.end_time, s.is_booked`

type SlotRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *SlotRepo) With(db DB) *SlotRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *SlotRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func scanSlot(row pgx.Row) (*domain.CourtSlot, error) {
	var s domain.CourtSlot
	if err := row.Scan(
		&s.ID,
		&s.CourtID,
		&s.DayOfWeek,
		&s.StartTime,
		&s.EndTime,
		&s.IsBooked,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByCourt returns every stored slot of a court.
func (r *SlotRepo) ListByCourt(ctx context.Context, courtID int64) ([]domain.CourtSlot, error) {
	const op = "postgres.SlotRepo.ListByCourt"

	rows, err := r.handle().Query(ctx,
		`SELECT `+slotColumns+`
		 FROM court_slots s
		 WHERE s.court_id = $1
		 ORDER BY s.id`,
		courtID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	out := make([]domain.CourtSlot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// Insert stores slots for a court as unbooked rows.
func (r *SlotRepo) Insert(ctx context.Context, courtID int64, slots []slotgrid.Slot) error {
	const op = "postgres.SlotRepo.Insert"

	if len(slots) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, s := range slots {
		batch.Queue(
			`INSERT INTO court_slots (court_id, day_of_week, start_time, end_time, is_booked)
			 VALUES ($1, $2, $3, $4, false)`,
			courtID, s.Day, s.StartTime, s.EndTime,
		)
	}

	if err := r.handle().SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// Delete removes unbooked slots of a court by ID.
//
// Returns:
//   - error: repository.ErrSlotBooked if any of the slots is booked or gone,
//     so the caller's transaction must roll back.
func (r *SlotRepo) Delete(ctx context.Context, courtID int64, ids []int64) error {
	const op = "postgres.SlotRepo.Delete"

	if len(ids) == 0 {
		return nil
	}

	tag, err := r.handle().Exec(ctx,
		`DELETE FROM court_slots
		 WHERE court_id = $1 AND id = ANY($2) AND NOT is_booked`,
		courtID, ids,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if int(tag.RowsAffected()) != len(ids) {
		return wrapDBErr(op, repository.ErrSlotBooked)
	}

	return nil
}

// Replace deletes all of a court's slots and inserts slots in their place.
// Booking history of the deleted slots goes with them.
func (r *SlotRepo) Replace(ctx context.Context, courtID int64, slots []slotgrid.Slot) error {
	const op = "postgres.SlotRepo.Replace"

	if _, err := r.handle().Exec(ctx,
		`DELETE FROM court_slots WHERE court_id = $1`,
		courtID,
	); err != nil {
		return wrapDBErr(op, err)
	}

	if err := r.Insert(ctx, courtID, slots); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// SetBooked writes the booked flag without a precondition.
func (r *SlotRepo) SetBooked(ctx context.Context, slotID int64, booked bool) error {
	const op = "postgres.SlotRepo.SetBooked"

	tag, err := r.handle().Exec(ctx,
		`UPDATE court_slots SET is_booked = $2 WHERE id = $1`,
		slotID, booked,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrNotFound)
	}

	return nil
}
