package response

import (
	"testing"

	"slot-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func availabilitySlot(capacity, booked int, open bool) *entity.Slot {
	return &entity.Slot{
		Capacity:    capacity,
		BookedSeats: booked,
		IsAvailable: open,
	}
}

func TestProjectAvailabilityTiers(t *testing.T) {
	cases := []struct {
		name    string
		slot    *entity.Slot
		tier    UrgencyTier
		percent float64
	}{
		{"empty slot", availabilitySlot(100, 0, true), UrgencyAvailable, 0},
		{"below filling threshold", availabilitySlot(100, 69, true), UrgencyAvailable, 69},
		{"filling fast at 70 percent", availabilitySlot(100, 70, true), UrgencyFillingFast, 70},
		{"almost full at 90 percent", availabilitySlot(100, 90, true), UrgencyAlmostFull, 90},
		{"one seat left", availabilitySlot(100, 99, true), UrgencyAlmostFull, 99},
		{"sold out", availabilitySlot(100, 100, true), UrgencySoldOut, 100},
		{"closed slot reads as sold out", availabilitySlot(100, 10, false), UrgencySoldOut, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ProjectAvailability(tc.slot)
			assert.Equal(t, tc.tier, got.UrgencyTier)
			assert.InDelta(t, tc.percent, got.OccupancyPercent, 0.001)
			assert.Equal(t, tc.slot.Capacity-tc.slot.BookedSeats, got.AvailableSeats)
		})
	}
}

func TestProjectAvailabilityThresholdsOnSmallSlot(t *testing.T) {
	// 9/10 is exactly 90 percent
	got := ProjectAvailability(availabilitySlot(10, 9, true))
	assert.Equal(t, UrgencyAlmostFull, got.UrgencyTier)

	// 7/10 lands on the filling-fast boundary
	got = ProjectAvailability(availabilitySlot(10, 7, true))
	assert.Equal(t, UrgencyFillingFast, got.UrgencyTier)
}

func TestSlotToResponseCarriesAvailability(t *testing.T) {
	slot := availabilitySlot(50, 45, true)
	slot.SlotCode = "abc"
	slot.Title = "Matinee"

	resp := SlotToResponse(slot)
	assert.Equal(t, "abc", resp.SlotCode)
	assert.Equal(t, UrgencyAlmostFull, resp.Availability.UrgencyTier)
	assert.Equal(t, 5, resp.Availability.AvailableSeats)
}
