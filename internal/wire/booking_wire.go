package wire

import (
	"slot-booking/internal/adaptor"
	"slot-booking/internal/data/repository"
	"slot-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require identity) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(repo.User, log))

		// POST /api/booking - Create new booking
		r.Post("/api/booking", bookingHandler.CreateBooking)

		// GET /api/user/bookings - View booking history (caller's own bookings)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.Identity(repo.User, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/bookings/{ref} - View any booking by reference
		r.Get("/{ref}", bookingHandler.GetBookingByReference)

		// PUT /api/admin/bookings/{ref}/cancel - Cancel a booking
		r.Put("/{ref}/cancel", bookingHandler.CancelBooking)
	})
}
