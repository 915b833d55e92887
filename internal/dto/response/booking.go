package response

import (
	"time"

	"slot-booking/internal/data/entity"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	BookingRef  string               `json:"booking_ref"`
	UserID      string               `json:"user_id"`
	SlotCode    string               `json:"slot_code,omitempty"`
	SlotTitle   string               `json:"slot_title,omitempty"`
	Venue       string               `json:"venue,omitempty"`
	StartTime   *time.Time           `json:"start_time,omitempty"`
	Seats       []string             `json:"seats"`
	TotalAmount float64              `json:"total_amount"`
	Status      entity.BookingStatus `json:"status"`
	BookingDate time.Time            `json:"booking_date"`
	CreatedAt   time.Time            `json:"created_at"`
}

// BookingToResponse flattens slot details into the booking view; slot may be
// nil when the lookup failed non-fatally.
func BookingToResponse(booking *entity.Booking, slot *entity.Slot) BookingResponse {
	resp := BookingResponse{
		ID:          booking.ID.String(),
		BookingRef:  booking.BookingRef,
		UserID:      booking.UserID.String(),
		Seats:       booking.Seats,
		TotalAmount: booking.TotalAmount,
		Status:      booking.Status,
		BookingDate: booking.BookingDate,
		CreatedAt:   booking.CreatedAt,
	}

	if slot != nil {
		resp.SlotCode = slot.SlotCode
		resp.SlotTitle = slot.Title
		resp.Venue = slot.Venue
		start := slot.StartTime
		resp.StartTime = &start
	}

	return resp
}
