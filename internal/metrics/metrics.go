// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gilded",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gilded",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	StoreWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gilded",
		Name:      "store_writes_total",
		Help:      "Document store writes by operation and outcome.",
	}, []string{"op", "outcome"})

	StoreWritesInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "gilded",
		Name:      "store_writes_in_flight",
		Help:      "Document store writes dispatched but not yet finished.",
	})

	Generations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gilded",
		Name:      "generations_total",
		Help:      "Generative text calls by flow and outcome.",
	}, []string{"flow", "outcome"})

	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gilded",
		Name:      "notifications_total",
		Help:      "Confirmation emails by outcome.",
	}, []string{"outcome"})

	Bookings = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gilded",
		Name:      "bookings_confirmed_total",
		Help:      "Confirmed bookings.",
	})
)

// Outcome maps an error to an outcome label
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
