package repository

import (
	"context"
	"time"

	"staybook/internal/domain"
)

// BookingRepository exposes read access to bookings plus creation for seeding.
type BookingRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, booking *domain.Booking) (int64, error)
	// ListUpcoming returns bookings of bookerID ending strictly after now, latest end first.
	ListUpcoming(ctx context.Context, bookerID int64, now time.Time) ([]domain.Booking, error)
	// ListPast returns bookings of bookerID ending strictly before now, latest end first.
	ListPast(ctx context.Context, bookerID int64, now time.Time) ([]domain.Booking, error)
	Count(ctx context.Context) (int, error)
	FindSlice(ctx context.Context, limit, offset int) ([]domain.Booking, error)
}
