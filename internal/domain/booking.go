package domain

import "time"

// Booking is a reservation made by a user (the booker) on an ad.
type Booking struct {
	ID        int64
	BookerID  int64
	AdID      int64
	StartDate time.Time
	EndDate   time.Time
	Amount    float64
	Comment   string
	CreatedAt time.Time
}

// Nights returns the number of whole days between start and end.
func (b Booking) Nights() int {
	return int(b.EndDate.Sub(b.StartDate).Hours() / 24)
}
