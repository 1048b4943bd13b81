package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "http_requests_total",
			Help:      "HTTP requests by handler and status code.",
		},
		[]string{"handler", "code"},
	)

	bookingStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "bookings_total",
			Help:      "Booking lifecycle transitions by resulting status.",
		},
		[]string{"status"},
	)

	rateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "gateway_rate_limited_total",
			Help:      "Requests rejected by the gateway rate limiter.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingStatus, rateLimited)
	})
}

// IncHTTP increments the request counter for a handler/status pair.
func IncHTTP(handler, code string) {
	httpRequests.WithLabelValues(handler, code).Inc()
}

// IncBooking increments the booking counter for a resulting status.
func IncBooking(status string) {
	bookingStatus.WithLabelValues(status).Inc()
}

// IncRateLimited counts a request rejected by the gateway limiter.
func IncRateLimited() {
	rateLimited.Inc()
}
