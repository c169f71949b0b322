package service

import (
	"context"
	"time"

	"staybook/internal/domain"
	"staybook/internal/pagination"
	"staybook/internal/repository"
)

// BookingLists splits a booker's reservations around the moment of the query.
type BookingLists struct {
	Upcoming []domain.Booking
	Past     []domain.Booking
	At       time.Time
}

// BookingService gives read access to bookings.
type BookingService interface {
	ListForBooker(ctx context.Context, bookerID int64) (BookingLists, error)
	ListPage(ctx context.Context, cfg pagination.Config) (pagination.Page[domain.Booking], error)
}

type bookingService struct {
	bookings repository.BookingRepository
	now      func() time.Time
}

// NewBookingService builds the service. now defaults to time.Now when nil.
func NewBookingService(bookings repository.BookingRepository, now func() time.Time) BookingService {
	if now == nil {
		now = time.Now
	}
	return &bookingService{
		bookings: bookings,
		now:      now,
	}
}

// ListForBooker reads the clock once so both sets share the same boundary.
// A booking ending exactly at that instant belongs to neither set.
func (s *bookingService) ListForBooker(ctx context.Context, bookerID int64) (BookingLists, error) {
	now := s.now().UTC().Truncate(time.Second)

	upcoming, err := s.bookings.ListUpcoming(ctx, bookerID, now)
	if err != nil {
		return BookingLists{}, err
	}
	past, err := s.bookings.ListPast(ctx, bookerID, now)
	if err != nil {
		return BookingLists{}, err
	}
	return BookingLists{Upcoming: upcoming, Past: past, At: now}, nil
}

func (s *bookingService) ListPage(ctx context.Context, cfg pagination.Config) (pagination.Page[domain.Booking], error) {
	return pagination.Load[domain.Booking](ctx, s.bookings, cfg)
}
