package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"staybook/internal/domain"
	"staybook/internal/repository"
)

// Booking dates are kept as UTC text at second precision so that string
// comparison in SQL matches chronological order.
const dateLayout = "2006-01-02 15:04:05"

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	booker_id INTEGER NOT NULL,
	ad_id INTEGER NOT NULL DEFAULT 0,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	amount REAL NOT NULL DEFAULT 0,
	comment TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	FOREIGN KEY(booker_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_bookings_booker_end ON bookings(booker_id, end_date);
`

const bookingColumns = `id, booker_id, ad_id, start_date, end_date, amount, comment, created_at`

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBookingsTable); err != nil {
		return fmt.Errorf("create bookings table: %w", err)
	}
	return nil
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (int64, error) {
	booking.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO bookings (booker_id, ad_id, start_date, end_date, amount, comment, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		booking.BookerID,
		booking.AdID,
		formatDate(booking.StartDate),
		formatDate(booking.EndDate),
		booking.Amount,
		booking.Comment,
		booking.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert booking: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("booking last insert id: %w", err)
	}
	booking.ID = id
	return id, nil
}

func (r *BookingRepository) ListUpcoming(ctx context.Context, bookerID int64, now time.Time) ([]domain.Booking, error) {
	return r.query(ctx, `
SELECT `+bookingColumns+`
FROM bookings
WHERE booker_id = ? AND end_date > ?
ORDER BY end_date DESC`,
		bookerID,
		formatDate(now),
	)
}

func (r *BookingRepository) ListPast(ctx context.Context, bookerID int64, now time.Time) ([]domain.Booking, error) {
	return r.query(ctx, `
SELECT `+bookingColumns+`
FROM bookings
WHERE booker_id = ? AND end_date < ?
ORDER BY end_date DESC`,
		bookerID,
		formatDate(now),
	)
}

func (r *BookingRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return total, nil
}

func (r *BookingRepository) FindSlice(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	return r.query(ctx, `
SELECT `+bookingColumns+`
FROM bookings
LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
}

func (r *BookingRepository) query(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}

func scanBooking(scanner interface {
	Scan(dest ...any) error
}) (*domain.Booking, error) {
	var (
		booking domain.Booking
		start   string
		end     string
	)
	if err := scanner.Scan(
		&booking.ID,
		&booking.BookerID,
		&booking.AdID,
		&start,
		&end,
		&booking.Amount,
		&booking.Comment,
		&booking.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}

	var err error
	if booking.StartDate, err = parseDate(start); err != nil {
		return nil, fmt.Errorf("parse booking start date: %w", err)
	}
	if booking.EndDate, err = parseDate(end); err != nil {
		return nil, fmt.Errorf("parse booking end date: %w", err)
	}
	return &booking, nil
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}
