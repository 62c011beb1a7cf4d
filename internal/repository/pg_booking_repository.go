package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/lumina/backend/internal/model"
)

// PgBookingRepository is the PostgreSQL implementation of BookingRepository.
type PgBookingRepository struct {
	db *Connector
}

// NewPgBookingRepository creates a PgBookingRepository backed by the given connector.
func NewPgBookingRepository(db *Connector) *PgBookingRepository {
	return &PgBookingRepository{db: db}
}

var _ BookingRepository = (*PgBookingRepository)(nil)

const bookingColumns = `id, couple_name, email, COALESCE(phone, ''), event_date, event_location,
	services_interested, COALESCE(message, ''), status, created_at, updated_at`

func scanBooking(row rowScanner) (*model.Booking, error) {
	var b model.Booking
	var status string
	if err := row.Scan(&b.ID, &b.CoupleName, &b.Email, &b.Phone, &b.EventDate, &b.EventLocation,
		&b.ServicesInterested, &b.Message, &status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Status = model.BookingStatus(status)
	if b.ServicesInterested == nil {
		b.ServicesInterested = []string{}
	}
	return &b, nil
}

// Create inserts b. The caller assigns b.ID; timestamps are taken from the
// database RETURNING clause.
func (r *PgBookingRepository) Create(ctx context.Context, b *model.Booking) error {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return err
	}
	return pool.QueryRow(ctx,
		`INSERT INTO bookings (id, couple_name, email, phone, event_date, event_location,
		                       services_interested, message, status)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, NULLIF($8, ''), $9)
		 RETURNING created_at, updated_at`,
		b.ID, b.CoupleName, b.Email, b.Phone, b.EventDate, b.EventLocation,
		b.ServicesInterested, b.Message, string(b.Status),
	).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// List returns bookings newest first.
func (r *PgBookingRepository) List(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []*model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// FindByID returns ErrNotFound when no booking has the given id.
func (r *PgBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	b, err := scanBooking(pool.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

// UpdateStatus sets the status and bumps updated_at, returning the updated
// booking or ErrNotFound.
func (r *PgBookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	b, err := scanBooking(pool.QueryRow(ctx,
		`UPDATE bookings SET status = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+bookingColumns,
		id, string(status)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}
