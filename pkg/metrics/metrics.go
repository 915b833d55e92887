package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests served, by method, route and status code.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds, by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	bookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookings_total",
		Help: "Bookings processed, by outcome status.",
	}, []string{"status"})

	seatConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "seat_conflicts_total",
		Help: "Seat selections lost to a concurrent booking.",
	})
)

// BookingConfirmed records a successfully committed booking.
func BookingConfirmed() { bookingsTotal.WithLabelValues("confirmed").Inc() }

// BookingCancelled records a booking cancellation.
func BookingCancelled() { bookingsTotal.WithLabelValues("cancelled").Inc() }

// SeatConflict records a booking attempt that lost a race for its seats.
func SeatConflict() { seatConflictsTotal.Inc() }

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler { return promhttp.Handler() }

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency per chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}

		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
