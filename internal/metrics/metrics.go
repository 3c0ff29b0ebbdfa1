package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tracks RFQs entering the pipeline by source and outcome.
	RFQProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rates_rfq_processed_total",
			Help: "Total number of RFQs processed (by source and result).",
		},
		[]string{"source", "result"}, // result = "priced" | "rejected" | "error"
	)

	// Measures end-to-end time from dequeue to published result.
	PricingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rates_pricing_duration_seconds",
			Help:    "Duration of validate+build+price per RFQ in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15), // 100µs → ~1.6s
		},
		[]string{"kind"}, // PAYER | RECEIVER
	)

	// Tracks validation findings by severity.
	ValidationFindingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rates_validation_findings_total",
			Help: "Total validation findings by field and severity.",
		},
		[]string{"field", "severity"},
	)

	// Tracks NATS messages processed by subject and result.
	NATSMessageCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_messages_total",
			Help: "Total number of NATS messages processed.",
		},
		[]string{"subject", "result"}, // result = "ok" | "error"
	)

	NATSMessageLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nats_message_latency_seconds",
			Help:    "Time taken to publish NATS messages",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"subject"},
	)

	// Tracks total errors (aggregated).
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rates_engine_errors_total",
			Help: "Count of engine-level errors by component.",
		},
		[]string{"component", "reason"},
	)

	// Gauges the current depth of the work queue.
	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rates_work_queue_depth",
			Help: "Number of RFQs waiting in the work queue.",
		},
	)
)

// ObserveDuration records the time taken for a function and updates the given histogram.
func ObserveDuration(v interface{}, start time.Time, labels ...string) {
	duration := time.Since(start).Seconds()

	switch metric := v.(type) {
	case *prometheus.HistogramVec:
		metric.WithLabelValues(labels...).Observe(duration)
	case *prometheus.SummaryVec:
		metric.WithLabelValues(labels...).Observe(duration)
	default:
		// silently ignore counters; they're not meant for duration tracking
	}
}

func IncRFQ(source, result string) {
	RFQProcessedTotal.WithLabelValues(source, result).Inc()
}

func IncFinding(field, severity string) {
	ValidationFindingsTotal.WithLabelValues(field, severity).Inc()
}

func IncNATSMessage(subject, result string) {
	NATSMessageCount.WithLabelValues(subject, result).Inc()
}

func IncError(component, reason string) {
	ErrorsTotal.WithLabelValues(component, reason).Inc()
}

func SetQueueDepth(n int) {
	QueueDepth.Set(float64(n))
}
