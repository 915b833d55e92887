// internal/wire/wire.go
package wire

import (
	"net/http"
	"slot-booking/internal/adaptor"
	"slot-booking/internal/data/repository"
	"slot-booking/internal/usecase"
	"slot-booking/pkg/cache"
	"slot-booking/pkg/database"
	"slot-booking/pkg/metrics"
	"slot-booking/pkg/middleware"
	"slot-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes
func Wiring(db database.PgxIface, repo *repository.Repository, store cache.Store, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(db, repo, store, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(metrics.Middleware)

	// Apply routes
	wireSlot(r, handler.Slot, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", metrics.Handler())

	return r
}
