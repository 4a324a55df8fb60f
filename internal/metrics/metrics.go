package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ticketMetrics tracks the ticket API's operation counts and latency.
type ticketMetrics struct {
	operations *prometheus.CounterVec
	durations  prometheus.Observer
}

var (
	ticketMetricsOnce sync.Once
	ticketMetricsInst *ticketMetrics
)

func globalTicketMetrics() *ticketMetrics {
	ticketMetricsOnce.Do(func() {
		ticketMetricsInst = newTicketMetrics()
	})
	return ticketMetricsInst
}

func newTicketMetrics() *ticketMetrics {
	return &ticketMetrics{
		operations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goatdesk",
			Subsystem: "tickets",
			Name:      "operations_total",
			Help:      "Ticket operations, labeled by operation and outcome",
		}, []string{"operation", "outcome"}),
		durations: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "goatdesk",
			Subsystem: "tickets",
			Name:      "operation_duration_seconds",
			Help:      "Duration of ticket operations",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// ObserveOperation records one completed ticket operation.
func ObserveOperation(operation, outcome string, elapsed time.Duration) {
	m := globalTicketMetrics()
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.durations.Observe(elapsed.Seconds())
}
