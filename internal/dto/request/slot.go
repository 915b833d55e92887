package request

import "time"

type CreateSlotRequest struct {
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description"`
	Venue       string    `json:"venue" validate:"required,max=255"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Capacity    int       `json:"capacity" validate:"required,min=1"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	IsAvailable *bool     `json:"is_available,omitempty"`
}

// SlotFilterRequest is parsed from query parameters; nil/empty means no
// constraint.
type SlotFilterRequest struct {
	Venue     string
	Title     string
	StartDate *time.Time
	EndDate   *time.Time
	MinPrice  *float64
	MaxPrice  *float64
}
