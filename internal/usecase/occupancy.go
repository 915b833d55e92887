package usecase

import (
	"context"
	"fmt"

	"slot-booking/internal/data/repository"

	"github.com/google/uuid"
)

// resolveOccupiedSeats aggregates the seat IDs of all confirmed bookings for
// a slot into a deduplicated set. It reflects the latest committed state at
// call time; the commit transaction re-reads under the slot lock.
func resolveOccupiedSeats(ctx context.Context, bookings repository.BookingRepository, slotID uuid.UUID) (map[string]struct{}, error) {
	seats, err := bookings.FindConfirmedSeatsBySlotID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve occupied seats: %v", ErrStorageUnavailable, err)
	}
	return seatSet(seats), nil
}

func seatSet(seats []string) map[string]struct{} {
	set := make(map[string]struct{}, len(seats))
	for _, id := range seats {
		set[id] = struct{}{}
	}
	return set
}
