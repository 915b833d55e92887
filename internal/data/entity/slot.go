package entity

import "time"

type Slot struct {
	Base
	SlotCode    string    `db:"slot_code"` // external-facing opaque code
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Venue       string    `db:"venue"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
	Capacity    int       `db:"capacity"`
	BookedSeats int       `db:"booked_seats"`
	IsAvailable bool      `db:"is_available"`
	Price       float64   `db:"price"` // base reference price
}

// AvailableSeats is derived, never stored.
func (s *Slot) AvailableSeats() int {
	return s.Capacity - s.BookedSeats
}
