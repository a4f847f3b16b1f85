package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"wanderplan/internal/events"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wanderplan",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wanderplan",
			Name:      "booking_operations_total",
			Help:      "Booking mutations by operation (placed, updated, removed).",
		},
		[]string{"operation"},
	)

	gridComputations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wanderplan",
			Name:      "grid_computations_total",
			Help:      "Day-schedule grid layouts computed.",
		},
	)

	propagationUpdates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wanderplan",
			Name:      "propagation_updates_total",
			Help:      "Booking snapshots rewritten by explicit propagation.",
		},
	)

	storeFailovers = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wanderplan",
			Name:      "store_failovers_total",
			Help:      "Times the primary store was marked down.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingOps, gridComputations, propagationUpdates, storeFailovers)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncGridComputation counts one layout pass.
func IncGridComputation() {
	gridComputations.Inc()
}

// IncStoreFailover counts a primary-store downgrade.
func IncStoreFailover() {
	storeFailovers.Inc()
}

// BindEvents bridges domain events into counters.
func BindEvents(bus *events.EventBus) {
	bookingEvents := map[string]string{
		events.EventBookingPlaced:  "placed",
		events.EventBookingUpdated: "updated",
		events.EventBookingRemoved: "removed",
	}
	for eventType, op := range bookingEvents {
		op := op
		bus.Subscribe(eventType, func(*events.Event) error {
			bookingOps.WithLabelValues(op).Inc()
			return nil
		})
	}

	bus.Subscribe(events.EventPropagationApplied, func(*events.Event) error {
		propagationUpdates.Inc()
		return nil
	})
}
