package usecase

import (
	"fmt"
	"strings"

	"slot-booking/internal/data/entity"
	"slot-booking/internal/seatmap"
)

// validateBooking checks a proposed seat set against the slot's current state
// and returns the server-computed total amount. It is pure with respect to
// its inputs; the caller supplies fresh occupancy. Client-supplied amounts
// are never consulted.
func validateBooking(slot *entity.Slot, requested []string, occupied map[string]struct{}, layout seatmap.Layout) (float64, error) {
	if len(requested) == 0 {
		return 0, ErrEmptySelection
	}

	seen := make(map[string]struct{}, len(requested))
	for _, id := range requested {
		if _, dup := seen[id]; dup {
			return 0, fmt.Errorf("%w: seat %s selected more than once", ErrInvalidSeatID, id)
		}
		seen[id] = struct{}{}
	}

	if !slot.IsAvailable {
		return 0, fmt.Errorf("%w: slot %s", ErrSlotUnavailable, slot.SlotCode)
	}

	if remaining := slot.AvailableSeats(); remaining < len(requested) {
		return 0, fmt.Errorf("%w: %d requested, %d remaining", ErrInsufficientCapacity, len(requested), remaining)
	}

	total, invalid := layout.TotalFor(slot.Capacity, requested)
	if len(invalid) > 0 {
		return 0, fmt.Errorf("%w: %s not in seating chart", ErrInvalidSeatID, strings.Join(invalid, ", "))
	}

	var conflicts []string
	for _, id := range requested {
		if _, taken := occupied[id]; taken {
			conflicts = append(conflicts, id)
		}
	}
	if len(conflicts) > 0 {
		return 0, fmt.Errorf("%w: %s", ErrSeatAlreadyBooked, strings.Join(conflicts, ", "))
	}

	return total, nil
}
