package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slot-booking/internal/data/entity"
	"slot-booking/internal/data/repository"
	"slot-booking/internal/dto/request"
	"slot-booking/internal/dto/response"
	"slot-booking/internal/seatmap"
	"slot-booking/pkg/cache"
	"slot-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SlotService interface {
	GetSlots(ctx context.Context, req *request.SlotFilterRequest) ([]response.SlotResponse, error)
	GetSlotByCode(ctx context.Context, code string) (*response.SlotResponse, error)
	GetSeatMap(ctx context.Context, code string) (*response.SeatMapResponse, error)

	// Admin endpoint
	CreateSlot(ctx context.Context, req *request.CreateSlotRequest) (*response.SlotResponse, error)
}

type slotService struct {
	repo     *repository.Repository
	layout   seatmap.Layout
	store    cache.Store
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewSlotService(repo *repository.Repository, layout seatmap.Layout, store cache.Store, cacheTTL time.Duration, log *zap.Logger) SlotService {
	return &slotService{
		repo:     repo,
		layout:   layout,
		store:    store,
		cacheTTL: cacheTTL,
		log:      log.With(zap.String("service", "slot")),
	}
}

// SeatMapCacheKey names the cached seat grid for a slot. Booking commit and
// cancellation delete this key.
func SeatMapCacheKey(slotCode string) string {
	return "slot:seats:" + slotCode
}

func (s *slotService) GetSlots(ctx context.Context, req *request.SlotFilterRequest) ([]response.SlotResponse, error) {
	filter := repository.SlotFilter{
		Venue:       req.Venue,
		Title:       req.Title,
		StartAfter:  req.StartDate,
		StartBefore: req.EndDate,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
	}

	slots, err := s.repo.Slot.FindAvailable(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list slots", zap.Error(err))
		return nil, fmt.Errorf("%w: list slots: %v", ErrStorageUnavailable, err)
	}

	responses := make([]response.SlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = response.SlotToResponse(slot)
	}

	s.log.Info("Slots listed", zap.Int("count", len(responses)))
	return responses, nil
}

func (s *slotService) GetSlotByCode(ctx context.Context, code string) (*response.SlotResponse, error) {
	slot, err := s.findSlot(ctx, code)
	if err != nil {
		return nil, err
	}

	resp := response.SlotToResponse(slot)
	return &resp, nil
}

// GetSeatMap derives the seat grid from capacity and marks occupancy from
// confirmed bookings. The availability projection is recomputed on every
// read; only the grid itself is cached, and the cache is dropped on every
// commit touching the slot.
func (s *slotService) GetSeatMap(ctx context.Context, code string) (*response.SeatMapResponse, error) {
	slot, err := s.findSlot(ctx, code)
	if err != nil {
		return nil, err
	}

	var resp response.SeatMapResponse
	if err := s.store.Get(ctx, SeatMapCacheKey(code), &resp); err == nil {
		resp.Availability = response.ProjectAvailability(slot)
		return &resp, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("Seat map cache read failed", zap.Error(err), zap.String("slot_code", code))
	}

	seats, err := seatmap.GenerateWithLayout(s.layout, slot.Capacity)
	if err != nil {
		return nil, err
	}

	occupied, err := resolveOccupiedSeats(ctx, s.repo.Booking, slot.ID)
	if err != nil {
		return nil, err
	}

	occupiedList := make([]string, 0, len(occupied))
	for i := range seats {
		if _, taken := occupied[seats[i].ID]; taken {
			seats[i].IsBooked = true
			occupiedList = append(occupiedList, seats[i].ID)
		}
	}

	resp = response.SeatMapResponse{
		SlotCode:      slot.SlotCode,
		Capacity:      slot.Capacity,
		Seats:         seats,
		OccupiedSeats: occupiedList,
		Availability:  response.ProjectAvailability(slot),
	}

	if err := s.store.Set(ctx, SeatMapCacheKey(code), resp, s.cacheTTL); err != nil {
		s.log.Warn("Seat map cache write failed", zap.Error(err), zap.String("slot_code", code))
	}

	return &resp, nil
}

func (s *slotService) CreateSlot(ctx context.Context, req *request.CreateSlotRequest) (*response.SlotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create slot validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// reject capacities the layout cannot chart
	if _, err := seatmap.GenerateWithLayout(s.layout, req.Capacity); err != nil {
		return nil, err
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	now := time.Now()
	slot := &entity.Slot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SlotCode:    utils.GenerateSlotCode(),
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Capacity:    req.Capacity,
		BookedSeats: 0,
		IsAvailable: isAvailable,
		Price:       req.Price,
	}

	if err := s.repo.Slot.Create(ctx, slot); err != nil {
		s.log.Error("Failed to create slot", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("%w: create slot: %v", ErrStorageUnavailable, err)
	}

	s.log.Info("Slot created",
		zap.String("slot_code", slot.SlotCode),
		zap.String("venue", slot.Venue),
		zap.Int("capacity", slot.Capacity),
	)

	resp := response.SlotToResponse(slot)
	return &resp, nil
}

func (s *slotService) findSlot(ctx context.Context, code string) (*entity.Slot, error) {
	slot, err := s.repo.Slot.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: load slot: %v", ErrStorageUnavailable, err)
	}
	if slot == nil {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, code)
	}
	return slot, nil
}
