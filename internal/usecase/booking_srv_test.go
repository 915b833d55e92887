package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"slot-booking/internal/data/entity"
	"slot-booking/internal/data/repository"
	"slot-booking/internal/dto/request"
	"slot-booking/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(st *fakeState) BookingService {
	repo := &repository.Repository{
		User:    &fakeUserRepo{st: st},
		Slot:    &fakeSlotRepo{st: st},
		Booking: &fakeBookingRepo{st: st},
	}
	return NewBookingService(&fakeDB{st: st}, repo, testLayout(), cache.Noop(), zap.NewNop())
}

func seedUser(st *fakeState) *entity.User {
	user := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:     "Asha",
		Email:    "asha@example.com",
		Role:     entity.RoleCustomer,
		IsActive: true,
	}
	st.addUser(user)
	return user
}

func seedSlot(st *fakeState, capacity, booked int) *entity.Slot {
	slot := &entity.Slot{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		SlotCode:    uuid.NewString(),
		Title:       "Evening Show",
		Venue:       "Main Hall",
		StartTime:   time.Now().Add(24 * time.Hour),
		EndTime:     time.Now().Add(26 * time.Hour),
		Capacity:    capacity,
		BookedSeats: booked,
		IsAvailable: true,
		Price:       250,
	}
	st.addSlot(slot)
	return slot
}

func seedConfirmedBooking(st *fakeState, userID, slotID uuid.UUID, seats []string) *entity.Booking {
	booking := &entity.Booking{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		BookingRef:  "BK-20260901-" + strings.ToUpper(uuid.NewString()[:8]),
		UserID:      userID,
		SlotID:      slotID,
		Seats:       seats,
		TotalAmount: float64(len(seats)) * 250,
		Status:      entity.BookingStatusConfirmed,
		BookingDate: time.Now(),
	}
	st.addBooking(booking)
	return booking
}

func TestCreateBookingSuccess(t *testing.T) {
	st := newFakeState()
	user := seedUser(st)
	slot := seedSlot(st, 100, 0)
	svc := newTestService(st)

	resp, err := svc.CreateBooking(context.Background(), user.ID.String(), &request.CreateBookingRequest{
		SlotCode: slot.SlotCode,
		Seats:    []string{"A1", "D1", "G1"},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
	assert.True(t, strings.HasPrefix(resp.BookingRef, "BK-"))
	assert.Equal(t, []string{"A1", "D1", "G1"}, resp.Seats)
	// vip 500 + premium 350 + regular 250, server-computed
	assert.Equal(t, 1100.0, resp.TotalAmount)
	assert.Equal(t, slot.SlotCode, resp.SlotCode)

	assert.Equal(t, 3, st.slotCopy(slot.ID).BookedSeats)
}

func TestCreateBookingUnknownUser(t *testing.T) {
	st := newFakeState()
	slot := seedSlot(st, 48, 0)
	svc := newTestService(st)

	_, err := svc.CreateBooking(context.Background(), uuid.NewString(), &request.CreateBookingRequest{
		SlotCode: slot.SlotCode,
		Seats:    []string{"A1"},
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateBookingUnknownSlot(t *testing.T) {
	st := newFakeState()
	user := seedUser(st)
	svc := newTestService(st)

	_, err := svc.CreateBooking(context.Background(), user.ID.String(), &request.CreateBookingRequest{
		SlotCode: "missing",
		Seats:    []string{"A1"},
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestCreateBookingSeatTaken(t *testing.T) {
	st := newFakeState()
	user := seedUser(st)
	slot := seedSlot(st, 48, 1)
	seedConfirmedBooking(st, user.ID, slot.ID, []string{"A1"})
	svc := newTestService(st)

	_, err := svc.CreateBooking(context.Background(), user.ID.String(), &request.CreateBookingRequest{
		SlotCode: slot.SlotCode,
		Seats:    []string{"A1", "A2"},
	})
	require.ErrorIs(t, err, ErrSeatAlreadyBooked)
	assert.Contains(t, err.Error(), "A1")

	// counter untouched on rejection
	assert.Equal(t, 1, st.slotCopy(slot.ID).BookedSeats)
}

func TestCreateBookingInsufficientCapacity(t *testing.T) {
	st := newFakeState()
	user := seedUser(st)
	slot := seedSlot(st, 12, 10)
	svc := newTestService(st)

	_, err := svc.CreateBooking(context.Background(), user.ID.String(), &request.CreateBookingRequest{
		SlotCode: slot.SlotCode,
		Seats:    []string{"A10", "A11", "A12"},
	})
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
}

func TestCreateBookingInvalidSeatID(t *testing.T) {
	st := newFakeState()
	user := seedUser(st)
	slot := seedSlot(st, 12, 0)
	svc := newTestService(st)

	for _, seats := range [][]string{
		{"B1"},       // beyond the 12-seat chart
		{"A13"},      // past the row width
		{"7C"},       // malformed
		{"A1", "A1"}, // duplicate selection
	} {
		_, err := svc.CreateBooking(context.Background(), user.ID.String(), &request.CreateBookingRequest{
			SlotCode: slot.SlotCode,
			Seats:    seats,
		})
		assert.ErrorIs(t, err, ErrInvalidSeatID, "seats %v", seats)
	}
}

func TestCreateBookingRetriesOnceAfterLostRace(t *testing.T) {
	st := newFakeState()
	user := seedUser(st)
	slot := seedSlot(st, 48, 0)
	svc := newTestService(st)

	// first guarded increment is rejected, as if a concurrent commit won
	st.failAddOnce.Store(true)

	resp, err := svc.CreateBooking(context.Background(), user.ID.String(), &request.CreateBookingRequest{
		SlotCode: slot.SlotCode,
		Seats:    []string{"B4"},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
	assert.Equal(t, 1, st.slotCopy(slot.ID).BookedSeats)
}

func TestCreateBookingLastSeatDuel(t *testing.T) {
	st := newFakeState()
	user := seedUser(st)
	slot := seedSlot(st, 12, 11)
	seedConfirmedBooking(st, user.ID, slot.ID, []string{
		"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9", "A10", "A11",
	})
	svc := newTestService(st)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(context.Background(), user.ID.String(), &request.CreateBookingRequest{
				SlotCode: slot.SlotCode,
				Seats:    []string{"A12"},
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "exactly one booking may claim the last seat")
	assert.Equal(t, 12, st.slotCopy(slot.ID).BookedSeats)
}

func TestConcurrentBookingsNeverDoubleSell(t *testing.T) {
	st := newFakeState()
	user := seedUser(st)
	slot := seedSlot(st, 60, 0)
	svc := newTestService(st)

	// each of 6 seats is contested by two goroutines
	const contenders = 12
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = svc.CreateBooking(context.Background(), user.ID.String(), &request.CreateBookingRequest{
				SlotCode: slot.SlotCode,
				Seats:    []string{fmt.Sprintf("A%d", i%6+1)},
			})
		}(i)
	}
	wg.Wait()

	st.mu.Lock()
	seatOwners := make(map[string]int)
	confirmed := 0
	for _, b := range st.bookings {
		if b.Status != entity.BookingStatusConfirmed {
			continue
		}
		confirmed++
		for _, id := range b.Seats {
			seatOwners[id]++
		}
	}
	booked := st.slots[slot.ID].BookedSeats
	st.mu.Unlock()

	assert.Equal(t, 6, confirmed)
	assert.Equal(t, 6, booked, "counter must equal seats held by confirmed bookings")
	for id, owners := range seatOwners {
		assert.Equal(t, 1, owners, "seat %s sold more than once", id)
	}
}

func TestCancelBooking(t *testing.T) {
	st := newFakeState()
	user := seedUser(st)
	slot := seedSlot(st, 48, 2)
	booking := seedConfirmedBooking(st, user.ID, slot.ID, []string{"A1", "A2"})
	svc := newTestService(st)

	require.NoError(t, svc.CancelBooking(context.Background(), booking.BookingRef))

	assert.Equal(t, 0, st.slotCopy(slot.ID).BookedSeats)
	cancelled, err := svc.GetBookingByReference(context.Background(), booking.BookingRef)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, cancelled.Status)

	// seats are immediately resellable
	resp, err := svc.CreateBooking(context.Background(), user.ID.String(), &request.CreateBookingRequest{
		SlotCode: slot.SlotCode,
		Seats:    []string{"A1"},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
}

func TestCancelBookingTwice(t *testing.T) {
	st := newFakeState()
	user := seedUser(st)
	slot := seedSlot(st, 48, 1)
	booking := seedConfirmedBooking(st, user.ID, slot.ID, []string{"A1"})
	svc := newTestService(st)

	require.NoError(t, svc.CancelBooking(context.Background(), booking.BookingRef))
	assert.ErrorIs(t, svc.CancelBooking(context.Background(), booking.BookingRef), ErrBookingNotCancellable)
	assert.Equal(t, 0, st.slotCopy(slot.ID).BookedSeats)
}

func TestCancelBookingUnknownReference(t *testing.T) {
	st := newFakeState()
	svc := newTestService(st)

	assert.ErrorIs(t, svc.CancelBooking(context.Background(), "BK-NOPE"), ErrBookingNotFound)
}

func TestGetUserBookings(t *testing.T) {
	st := newFakeState()
	user := seedUser(st)
	slot := seedSlot(st, 48, 3)
	seedConfirmedBooking(st, user.ID, slot.ID, []string{"A1"})
	seedConfirmedBooking(st, user.ID, slot.ID, []string{"A2"})
	seedConfirmedBooking(st, user.ID, slot.ID, []string{"A3"})
	svc := newTestService(st)

	page, err := svc.GetUserBookings(context.Background(), user.ID.String(), &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)

	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)
	for _, b := range page.Data {
		assert.Equal(t, slot.SlotCode, b.SlotCode)
	}
}
