package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kirinyoku/courtbook/internal/domain"
)

// QueryRepo serves the read-only joined views.
type QueryRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *QueryRepo) With(db DB) *QueryRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *QueryRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// ListFacilitySummaries returns every facility with its court count and the
// number of slots still free, newest first.
func (r *QueryRepo) ListFacilitySummaries(ctx context.Context) ([]domain.FacilitySummary, error) {
	const op = "postgres.QueryRepo.ListFacilitySummaries"

	rows, err := r.handle().Query(ctx,
		`SELECT `+facilityColumns+`,
		        (SELECT count(*) FROM courts c WHERE c.facility_id = f.id),
		        (SELECT count(*)
		           FROM court_slots s
		           JOIN courts c ON c.id = s.court_id
		          WHERE c.facility_id = f.id AND NOT s.is_booked)
		 FROM facilities f
		 ORDER BY f.created_at DESC, f.id DESC`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	out := make([]domain.FacilitySummary, 0)
	for rows.Next() {
		var s domain.FacilitySummary
		f := &s.Facility
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Location, &f.Image, &f.Description, &f.OwnerID, &f.CreatedAt,
			&s.CourtCount,
			&s.AvailableSlots,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// FacilityDetails returns a facility and its courts with slot counters.
//
// Returns:
//   - error: repository.ErrNotFound if the facility does not exist.
func (r *QueryRepo) FacilityDetails(ctx context.Context, facilityID int64) (*domain.FacilityDetails, error) {
	const op = "postgres.QueryRepo.FacilityDetails"

	db := r.handle()

	f, err := scanFacility(db.QueryRow(ctx,
		`SELECT `+facilityColumns+` FROM facilities f WHERE f.id = $1`,
		facilityID,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	rows, err := db.Query(ctx,
		`SELECT `+courtColumns+`,
		        count(s.id),
		        count(s.id) FILTER (WHERE NOT s.is_booked)
		 FROM courts c
		 LEFT JOIN court_slots s ON s.court_id = c.id
		 WHERE c.facility_id = $1
		 GROUP BY c.id
		 ORDER BY c.created_at, c.id`,
		facilityID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	details := &domain.FacilityDetails{Facility: *f, Courts: make([]domain.CourtSummary, 0)}
	for rows.Next() {
		var cs domain.CourtSummary
		c := &cs.Court
		if err := rows.Scan(
			&c.ID, &c.FacilityID, &c.Name, &c.Type, &c.Image, &c.CreatedAt,
			&cs.TotalSlots,
			&cs.AvailableSlots,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}
		details.Courts = append(details.Courts, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return details, nil
}

const bookingDetailsSelect = `SELECT ` + bookingColumns + `,
        ` + slotColumns + `,
        ` + courtColumns + `,
        ` + facilityColumns + `,
        u.id, u.email, u.name
 FROM bookings b
 JOIN court_slots s ON s.id = b.court_slot_id
 JOIN courts c ON c.id = s.court_id
 JOIN facilities f ON f.id = c.facility_id
 LEFT JOIN users u ON u.id = b.user_id`

// BookingsForUser returns a user's bookings joined with slot, court and
// facility, newest first.
func (r *QueryRepo) BookingsForUser(ctx context.Context, userID uuid.UUID) ([]domain.BookingDetails, error) {
	const op = "postgres.QueryRepo.BookingsForUser"

	rows, err := r.handle().Query(ctx,
		bookingDetailsSelect+`
		 WHERE b.user_id = $1
		 ORDER BY b.created_at DESC, b.id DESC`,
		userID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	out, err := scanBookingDetails(rows)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// BookingsForOwner returns bookings against every facility of ownerID,
// including the booker's summary, newest first.
func (r *QueryRepo) BookingsForOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.BookingDetails, error) {
	const op = "postgres.QueryRepo.BookingsForOwner"

	rows, err := r.handle().Query(ctx,
		bookingDetailsSelect+`
		 WHERE f.owner_id = $1
		 ORDER BY b.created_at DESC, b.id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	out, err := scanBookingDetails(rows)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func scanBookingDetails(rows pgx.Rows) ([]domain.BookingDetails, error) {
	defer rows.Close()

	out := make([]domain.BookingDetails, 0)
	for rows.Next() {
		var (
			d         domain.BookingDetails
			userID    *uuid.UUID
			userEmail *string
			userName  *string
		)
		b, s, c, f := &d.Booking, &d.Slot, &d.Court, &d.Facility
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.CourtSlotID, &b.BookingTime, &b.Status, &b.CreatedAt,
			&s.ID, &s.CourtID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.IsBooked,
			&c.ID, &c.FacilityID, &c.Name, &c.Type, &c.Image, &c.CreatedAt,
			&f.ID, &f.Name, &f.Location, &f.Image, &f.Description, &f.OwnerID, &f.CreatedAt,
			&userID, &userEmail, &userName,
		); err != nil {
			return nil, err
		}

		if userID != nil {
			d.User = &domain.UserSummary{ID: *userID, Name: userName}
			if userEmail != nil {
				d.User.Email = *userEmail
			}
		}

		out = append(out, d)
	}

	return out, rows.Err()
}
