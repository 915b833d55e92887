package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"slot-booking/internal/data/entity"
	"slot-booking/internal/data/repository"
	"slot-booking/internal/dto/request"
	"slot-booking/internal/dto/response"
	"slot-booking/internal/seatmap"
	"slot-booking/pkg/cache"
	"slot-booking/pkg/database"
	"slot-booking/pkg/metrics"
	"slot-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Admin endpoints
	GetBookingByReference(ctx context.Context, ref string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, ref string) error
}

type bookingService struct {
	db     database.PgxIface
	repo   *repository.Repository
	layout seatmap.Layout
	store  cache.Store
	log    *zap.Logger
}

func NewBookingService(db database.PgxIface, repo *repository.Repository, layout seatmap.Layout, store cache.Store, log *zap.Logger) BookingService {
	return &bookingService{
		db:     db,
		repo:   repo,
		layout: layout,
		store:  store,
		log:    log.With(zap.String("service", "booking")),
	}
}

// CreateBooking runs the full validate-then-commit sequence. The commit
// itself happens under a row-level lock on the slot; a lost race is retried
// once from the occupancy resolve before surfacing ErrSeatConflict.
func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("%w: load user: %v", ErrStorageUnavailable, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	slot, err := s.repo.Slot.FindByCode(ctx, req.SlotCode)
	if err != nil {
		return nil, fmt.Errorf("%w: load slot: %v", ErrStorageUnavailable, err)
	}
	if slot == nil {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, req.SlotCode)
	}

	var booking *entity.Booking
	for attempt := 0; ; attempt++ {
		occupied, err := resolveOccupiedSeats(ctx, s.repo.Booking, slot.ID)
		if err != nil {
			return nil, err
		}

		total, err := validateBooking(slot, req.Seats, occupied, s.layout)
		if err != nil {
			return nil, err
		}

		booking, err = s.commit(ctx, userUUID, slot, req.Seats, total)
		if err == nil {
			break
		}
		if errors.Is(err, ErrSeatConflict) && attempt == 0 {
			metrics.SeatConflict()
			s.log.Warn("Booking commit lost race, retrying",
				zap.String("slot_code", slot.SlotCode),
				zap.Strings("seats", req.Seats),
			)
			// reload counters before re-validating
			slot, err = s.repo.Slot.FindByID(ctx, slot.ID)
			if err != nil {
				return nil, fmt.Errorf("%w: reload slot: %v", ErrStorageUnavailable, err)
			}
			if slot == nil {
				return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, req.SlotCode)
			}
			continue
		}
		if errors.Is(err, ErrSeatConflict) {
			metrics.SeatConflict()
		}
		return nil, err
	}

	s.invalidateSeatCache(ctx, slot.SlotCode)
	metrics.BookingConfirmed()

	s.log.Info("Booking created",
		zap.String("booking_ref", booking.BookingRef),
		zap.String("slot_code", slot.SlotCode),
		zap.String("user_id", userID),
		zap.Strings("seats", booking.Seats),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	resp := response.BookingToResponse(booking, slot)
	return &resp, nil
}

// commit is the single serialization point: re-check and write inside one
// transaction holding the slot's row lock. Either the booking row and the
// counter increment both commit, or neither does.
func (s *bookingService) commit(ctx context.Context, userID uuid.UUID, slot *entity.Slot, seats []string, total float64) (*entity.Booking, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin commit transaction: %v", ErrStorageUnavailable, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	locked, err := s.repo.Slot.FindByIDForUpdateTx(ctx, tx, slot.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: lock slot: %v", ErrStorageUnavailable, err)
	}
	if locked == nil {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, slot.SlotCode)
	}
	if !locked.IsAvailable {
		return nil, fmt.Errorf("%w: slot %s", ErrSlotUnavailable, locked.SlotCode)
	}
	if remaining := locked.AvailableSeats(); remaining < len(seats) {
		return nil, fmt.Errorf("%w: %d requested, %d remaining", ErrSeatConflict, len(seats), remaining)
	}

	// occupancy may have grown since the pre-validation read
	committedSeats, err := s.repo.Booking.FindConfirmedSeatsBySlotIDTx(ctx, tx, slot.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: recheck occupancy: %v", ErrStorageUnavailable, err)
	}
	occupied := seatSet(committedSeats)
	var conflicts []string
	for _, id := range seats {
		if _, taken := occupied[id]; taken {
			conflicts = append(conflicts, id)
		}
	}
	if len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSeatConflict, strings.Join(conflicts, ", "))
	}

	ok, err := s.repo.Slot.AddBookedSeatsTx(ctx, tx, slot.ID, len(seats))
	if err != nil {
		return nil, fmt.Errorf("%w: increment booked seats: %v", ErrStorageUnavailable, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: capacity guard rejected increment", ErrSeatConflict)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingRef:  utils.GenerateBookingReference(),
		UserID:      userID,
		SlotID:      slot.ID,
		Seats:       append([]string(nil), seats...),
		TotalAmount: total,
		Status:      entity.BookingStatusConfirmed,
		BookingDate: now,
	}

	if err := s.repo.Booking.CreateTx(ctx, tx, booking); err != nil {
		return nil, fmt.Errorf("%w: insert booking: %v", ErrStorageUnavailable, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit booking: %v", ErrStorageUnavailable, err)
	}
	committed = true

	return booking, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("%w: get user bookings: %v", ErrStorageUnavailable, err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("%w: count user bookings: %v", ErrStorageUnavailable, err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		slot, err := s.repo.Slot.FindByID(ctx, booking.SlotID)
		if err != nil {
			return nil, fmt.Errorf("%w: load slot for booking %s: %v", ErrStorageUnavailable, booking.BookingRef, err)
		}
		bookingResponses[i] = response.BookingToResponse(booking, slot)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBookingByReference(ctx context.Context, ref string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByReference(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: load booking: %v", ErrStorageUnavailable, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, ref)
	}

	slot, err := s.repo.Slot.FindByID(ctx, booking.SlotID)
	if err != nil {
		return nil, fmt.Errorf("%w: load slot: %v", ErrStorageUnavailable, err)
	}

	resp := response.BookingToResponse(booking, slot)
	return &resp, nil
}

// CancelBooking mirrors the commit protocol: slot row lock, conditional
// status transition, guarded counter decrement, one transaction.
func (s *bookingService) CancelBooking(ctx context.Context, ref string) error {
	booking, err := s.repo.Booking.FindByReference(ctx, ref)
	if err != nil {
		return fmt.Errorf("%w: load booking: %v", ErrStorageUnavailable, err)
	}
	if booking == nil {
		return fmt.Errorf("%w: %s", ErrBookingNotFound, ref)
	}
	if booking.Status != entity.BookingStatusConfirmed {
		return fmt.Errorf("%w: status is %s", ErrBookingNotCancellable, booking.Status)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin cancel transaction: %v", ErrStorageUnavailable, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	slot, err := s.repo.Slot.FindByIDForUpdateTx(ctx, tx, booking.SlotID)
	if err != nil {
		return fmt.Errorf("%w: lock slot: %v", ErrStorageUnavailable, err)
	}
	if slot == nil {
		return fmt.Errorf("%w: slot for booking %s", ErrSlotNotFound, ref)
	}

	ok, err := s.repo.Booking.UpdateStatusTx(ctx, tx, booking.ID, entity.BookingStatusConfirmed, entity.BookingStatusCancelled)
	if err != nil {
		return fmt.Errorf("%w: update booking status: %v", ErrStorageUnavailable, err)
	}
	if !ok {
		// concurrent cancel won
		return fmt.Errorf("%w: already cancelled", ErrBookingNotCancellable)
	}

	ok, err = s.repo.Slot.AddBookedSeatsTx(ctx, tx, booking.SlotID, -len(booking.Seats))
	if err != nil {
		return fmt.Errorf("%w: decrement booked seats: %v", ErrStorageUnavailable, err)
	}
	if !ok {
		return fmt.Errorf("%w: counter guard rejected decrement for booking %s", ErrStorageUnavailable, ref)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit cancel: %v", ErrStorageUnavailable, err)
	}
	committed = true

	s.invalidateSeatCache(ctx, slot.SlotCode)
	metrics.BookingCancelled()

	s.log.Info("Booking cancelled",
		zap.String("booking_ref", ref),
		zap.String("slot_code", slot.SlotCode),
		zap.Int("seats_freed", len(booking.Seats)),
	)

	return nil
}

func (s *bookingService) invalidateSeatCache(ctx context.Context, slotCode string) {
	if err := s.store.Delete(ctx, SeatMapCacheKey(slotCode)); err != nil {
		s.log.Warn("Failed to invalidate seat map cache",
			zap.Error(err),
			zap.String("slot_code", slotCode),
		)
	}
}
