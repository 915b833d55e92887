package adaptor

import (
	"slot-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Slot    *SlotHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Slot:    NewSlotHandler(service.Slot, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}
