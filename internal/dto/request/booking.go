package request

// CreateBookingRequest carries the client's seat selection. Any amount field
// sent by the client is deliberately absent: totals are computed server-side.
type CreateBookingRequest struct {
	SlotCode string   `json:"slot_code" validate:"required"`
	Seats    []string `json:"seats" validate:"required,min=1,dive,required"`
}
