package usecase

import (
	"time"

	"slot-booking/internal/data/repository"
	"slot-booking/internal/seatmap"
	"slot-booking/pkg/cache"
	"slot-booking/pkg/database"
	"slot-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Slot    SlotService
	Booking BookingService
}

func NewService(db database.PgxIface, repo *repository.Repository, store cache.Store, config *utils.Config, log *zap.Logger) *Service {
	layout := seatmap.Layout{
		SeatsPerRow: config.Seating.SeatsPerRow,
		Bands: []seatmap.PriceBand{
			{UpToRow: 3, Tier: seatmap.TierVIP, Price: config.Seating.VIPPrice},
			{UpToRow: 6, Tier: seatmap.TierPremium, Price: config.Seating.PremiumPrice},
			{UpToRow: -1, Tier: seatmap.TierRegular, Price: config.Seating.RegularPrice},
		},
	}

	cacheTTL := time.Duration(config.Redis.SeatMapTTLSeconds) * time.Second

	return &Service{
		Slot:    NewSlotService(repo, layout, store, cacheTTL, log),
		Booking: NewBookingService(db, repo, layout, store, log),
	}
}
