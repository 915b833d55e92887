package wire

import (
	"slot-booking/internal/adaptor"
	"slot-booking/internal/data/repository"
	"slot-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSlot(
	r chi.Router,
	slotHandler *adaptor.SlotHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/slots - Browse available slots with optional filters
	r.Get("/api/slots", slotHandler.GetSlots)

	// GET /api/slots/{code} - Slot details
	r.Get("/api/slots/{code}", slotHandler.GetSlotByCode)

	// GET /api/slots/{code}/seats - Seat map with live occupancy
	r.Get("/api/slots/{code}/seats", slotHandler.GetSeatMap)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/slots", func(r chi.Router) {
		r.Use(middleware.Identity(repo.User, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/slots - Create a slot
		r.Post("/", slotHandler.CreateSlot)
	})
}
