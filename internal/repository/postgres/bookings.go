package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kirinyoku/courtbook/internal/domain"
)

const bookingColumns = `b.id, b.user_id, b.court_slot_id, b.booking_time, b.status, b.created_at`

// BookingRepo reads and writes the booking/slot pair. Every write is a
// conditional update so callers can detect lost races.
type BookingRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *BookingRepo) With(db DB) *BookingRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BookingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.CourtSlotID,
		&b.BookingTime,
		&b.Status,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetSlot reads a slot and locks its row until the transaction ends.
func (r *BookingRepo) GetSlot(ctx context.Context, slotID int64) (*domain.CourtSlot, error) {
	const op = "postgres.BookingRepo.GetSlot"

	s, err := scanSlot(r.handle().QueryRow(ctx,
		`SELECT `+slotColumns+` FROM court_slots s WHERE s.id = $1 FOR UPDATE`,
		slotID,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return s, nil
}

func (r *BookingRepo) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.GetBooking"

	b, err := scanBooking(r.handle().QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings b WHERE b.id = $1`,
		bookingID,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return b, nil
}

// InsertBooking stores an active booking for a slot.
//
// Returns:
//   - error: repository.ErrConflict if the slot already has an active booking.
func (r *BookingRepo) InsertBooking(
	ctx context.Context,
	userID uuid.UUID,
	slotID int64,
	at time.Time,
) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.InsertBooking"

	b, err := scanBooking(r.handle().QueryRow(ctx,
		`INSERT INTO bookings AS b (user_id, court_slot_id, booking_time, status)
		 VALUES ($1, $2, $3, true)
		 RETURNING `+bookingColumns,
		userID, slotID, at,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return b, nil
}

// BookingContext is a booking with the court and facility it belongs to.
type BookingContext struct {
	Booking       domain.Booking
	CourtID       int64
	FacilityID    int64
	FacilityOwner *uuid.UUID
}

func (r *BookingRepo) GetBookingContext(ctx context.Context, bookingID int64) (*BookingContext, error) {
	const op = "postgres.BookingRepo.GetBookingContext"

	var bc BookingContext
	b := &bc.Booking
	if err := r.handle().QueryRow(ctx,
		`SELECT `+bookingColumns+`, c.id, c.facility_id, f.owner_id
		 FROM bookings b
		 JOIN court_slots s ON s.id = b.court_slot_id
		 JOIN courts c ON c.id = s.court_id
		 JOIN facilities f ON f.id = c.facility_id
		 WHERE b.id = $1`,
		bookingID,
	).Scan(
		&b.ID, &b.UserID, &b.CourtSlotID, &b.BookingTime, &b.Status, &b.CreatedAt,
		&bc.CourtID, &bc.FacilityID, &bc.FacilityOwner,
	); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &bc, nil
}

// SwapSlotBooked sets is_booked to `to` only when it currently equals
// `from`. It reports whether the row changed.
func (r *BookingRepo) SwapSlotBooked(ctx context.Context, slotID int64, from, to bool) (bool, error) {
	const op = "postgres.BookingRepo.SwapSlotBooked"

	tag, err := r.handle().Exec(ctx,
		`UPDATE court_slots SET is_booked = $3 WHERE id = $1 AND is_booked = $2`,
		slotID, from, to,
	)
	if err != nil {
		return false, wrapDBErr(op, err)
	}

	return tag.RowsAffected() == 1, nil
}

// SwapBookingStatus sets status to `to` only when it currently equals
// `from`. It reports whether the row changed.
func (r *BookingRepo) SwapBookingStatus(ctx context.Context, bookingID int64, from, to bool) (bool, error) {
	const op = "postgres.BookingRepo.SwapBookingStatus"

	tag, err := r.handle().Exec(ctx,
		`UPDATE bookings SET status = $3 WHERE id = $1 AND status = $2`,
		bookingID, from, to,
	)
	if err != nil {
		return false, wrapDBErr(op, err)
	}

	return tag.RowsAffected() == 1, nil
}

// Mismatch is a slot whose booked flag disagrees with its bookings.
type Mismatch struct {
	SlotID         int64
	CourtID        int64
	FacilityID     int64
	IsBooked       bool
	ActiveBookings int64
}

// FindMismatches scans for slots flagged booked without an active booking
// and slots with an active booking that are flagged free.
func (r *BookingRepo) FindMismatches(ctx context.Context) ([]Mismatch, error) {
	const op = "postgres.BookingRepo.FindMismatches"

	rows, err := r.handle().Query(ctx,
		`SELECT s.id, s.court_id, c.facility_id, s.is_booked, count(b.id)
		 FROM court_slots s
		 JOIN courts c ON c.id = s.court_id
		 LEFT JOIN bookings b ON b.court_slot_id = s.id AND b.status
		 GROUP BY s.id, s.court_id, c.facility_id, s.is_booked
		 HAVING s.is_booked <> (count(b.id) > 0)
		 ORDER BY s.id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []Mismatch
	for rows.Next() {
		var m Mismatch
		if err := rows.Scan(&m.SlotID, &m.CourtID, &m.FacilityID, &m.IsBooked, &m.ActiveBookings); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
