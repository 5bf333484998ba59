package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shareit"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		},
		[]string{"route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Booking lifecycle transitions by resulting status.",
		},
		[]string{"status"},
	)

	resolveConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_resolve_conflicts_total",
			Help:      "Resolutions lost to a concurrent modification.",
		},
	)

	unsupportedStates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_unsupported_state_total",
			Help:      "List requests rejected for an unknown state filter.",
		},
	)

	relayedEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relayed_events_total",
			Help:      "Events forwarded to the broker by outcome.",
		},
		[]string{"event", "outcome"},
	)

	rateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by a rate limiter.",
		},
		[]string{"limiter"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			httpDuration,
			bookingTransitions,
			resolveConflicts,
			unsupportedStates,
			relayedEvents,
			rateLimited,
		)
	})
}

// ObserveHTTP records one served request.
func ObserveHTTP(route string, status int, seconds float64) {
	httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route).Observe(seconds)
}

func IncBookingTransition(status string) {
	bookingTransitions.WithLabelValues(status).Inc()
}

func IncResolveConflict() {
	resolveConflicts.Inc()
}

func IncUnsupportedState() {
	unsupportedStates.Inc()
}

// IncRelayed counts a relay attempt outcome: "sent", "retried" or "dead_letter".
func IncRelayed(eventType, outcome string) {
	relayedEvents.WithLabelValues(eventType, outcome).Inc()
}

func IncRateLimited(limiter string) {
	rateLimited.WithLabelValues(limiter).Inc()
}
