package response

import (
	"time"

	"slot-booking/internal/data/entity"
	"slot-booking/internal/seatmap"
)

type UrgencyTier string

const (
	UrgencySoldOut     UrgencyTier = "sold_out"
	UrgencyAlmostFull  UrgencyTier = "almost_full"
	UrgencyFillingFast UrgencyTier = "filling_fast"
	UrgencyAvailable   UrgencyTier = "available"
)

type AvailabilityResponse struct {
	AvailableSeats   int         `json:"available_seats"`
	OccupancyPercent float64     `json:"occupancy_percent"`
	UrgencyTier      UrgencyTier `json:"urgency_tier"`
}

type SlotResponse struct {
	ID           string               `json:"id"`
	SlotCode     string               `json:"slot_code"`
	Title        string               `json:"title"`
	Description  string               `json:"description,omitempty"`
	Venue        string               `json:"venue"`
	StartTime    time.Time            `json:"start_time"`
	EndTime      time.Time            `json:"end_time"`
	Capacity     int                  `json:"capacity"`
	BookedSeats  int                  `json:"booked_seats"`
	IsAvailable  bool                 `json:"is_available"`
	Price        float64              `json:"price"`
	Availability AvailabilityResponse `json:"availability"`
}

type SeatMapResponse struct {
	SlotCode      string               `json:"slot_code"`
	Capacity      int                  `json:"capacity"`
	Seats         []seatmap.Seat       `json:"seats"`
	OccupiedSeats []string             `json:"occupied_seats"`
	Availability  AvailabilityResponse `json:"availability"`
}

// ProjectAvailability derives the display-facing availability state from the
// slot's counters. Recomputed on every read, never cached across a commit.
func ProjectAvailability(slot *entity.Slot) AvailabilityResponse {
	available := slot.Capacity - slot.BookedSeats

	percent := 0.0
	if slot.Capacity > 0 {
		percent = float64(slot.BookedSeats) / float64(slot.Capacity) * 100
	}

	var tier UrgencyTier
	switch {
	case available <= 0 || !slot.IsAvailable:
		tier = UrgencySoldOut
	case percent >= 90:
		tier = UrgencyAlmostFull
	case percent >= 70:
		tier = UrgencyFillingFast
	default:
		tier = UrgencyAvailable
	}

	return AvailabilityResponse{
		AvailableSeats:   available,
		OccupancyPercent: percent,
		UrgencyTier:      tier,
	}
}

func SlotToResponse(slot *entity.Slot) SlotResponse {
	return SlotResponse{
		ID:           slot.ID.String(),
		SlotCode:     slot.SlotCode,
		Title:        slot.Title,
		Description:  slot.Description,
		Venue:        slot.Venue,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		Capacity:     slot.Capacity,
		BookedSeats:  slot.BookedSeats,
		IsAvailable:  slot.IsAvailable,
		Price:        slot.Price,
		Availability: ProjectAvailability(slot),
	}
}
