package repository

import (
	"slot-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Slot    SlotRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Slot:    NewSlotRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}
