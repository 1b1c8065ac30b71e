// Package repo contains booking persistence for the Reenam Hotel site.
// There are two stores behind one interface: a JSON file (the default, one
// array rewritten per booking) and Postgres. No business logic lives here,
// only storage and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/reenamhotel/site/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BookingRepo defines the persistence operations for bookings.
// The store is append-only: bookings are never updated or deleted.
type BookingRepo interface {
	// Append stores a new booking and returns the persisted record.
	// The caller assigns ID and CreatedAt.
	Append(ctx context.Context, b domain.Booking) (domain.Booking, error)

	// List returns every booking, oldest first.
	List(ctx context.Context) ([]domain.Booking, error)

	// ListPaged returns one page of bookings, newest first, and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error)
}

// pgBookingRepo is the Postgres implementation of BookingRepo.
type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

const bookingColumns = `id, check_in, check_out, guests, room_type, name, email, phone,
		special_requests, nights, price_per_night, total, created_at`

// Append inserts a booking row and returns the stored record.
func (r *pgBookingRepo) Append(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	const q = `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES (@id, @check_in, @check_out, @guests, @room_type, @name, @email, @phone,
		        @special_requests, @nights, @price_per_night, @total, @created_at)
		RETURNING ` + bookingColumns

	args := pgx.NamedArgs{
		"id":               b.ID,
		"check_in":         b.CheckIn,
		"check_out":        b.CheckOut,
		"guests":           b.Guests,
		"room_type":        b.RoomType,
		"name":             b.Name,
		"email":            b.Email,
		"phone":            b.Phone,
		"special_requests": b.SpecialRequests,
		"nights":           b.Nights,
		"price_per_night":  b.PricePerNight,
		"total":            b.Total,
		"created_at":       b.CreatedAt,
	}

	result, err := scanBooking(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Append: %w", err)
	}
	return result, nil
}

// List returns all bookings in insertion order.
func (r *pgBookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.List: %w", err)
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.List: %w", err)
	}
	return bookings, nil
}

// ListPaged returns one page of bookings, most recent first.
func (r *pgBookingRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.ListPaged: %w", err)
	}
	return bookings, total, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanBooking maps a single database row into a domain.Booking.
func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b        domain.Booking
		id       pgtype.UUID
		checkIn  pgtype.Date
		checkOut pgtype.Date
	)

	err := s.Scan(&id, &checkIn, &checkOut, &b.Guests, &b.RoomType, &b.Name, &b.Email, &b.Phone,
		&b.SpecialRequests, &b.Nights, &b.PricePerNight, &b.Total, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}

	b.ID = uuid.UUID(id.Bytes)
	b.CheckIn = checkIn.Time
	b.CheckOut = checkOut.Time
	return b, nil
}
