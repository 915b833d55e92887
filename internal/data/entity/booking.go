package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	Base
	BookingRef  string        `db:"booking_ref"`
	UserID      uuid.UUID     `db:"user_id"`
	SlotID      uuid.UUID     `db:"slot_id"`
	Seats       []string      `db:"seats"` // seat IDs, e.g. "C7"; stored as text[]
	TotalAmount float64       `db:"total_amount"`
	Status      BookingStatus `db:"status"`
	BookingDate time.Time     `db:"booking_date"`
}
