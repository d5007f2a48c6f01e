package metrics

import "github.com/prometheus/client_golang/prometheus"

// Skip reasons for EventsSkipped.
const (
	ReasonMalformed      = "malformed"
	ReasonStale          = "stale"
	ReasonBelowThreshold = "below_threshold"
	ReasonDuplicate      = "duplicate"
)

var (
	EventsFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whalewatch_events_fetched_total",
			Help: "Raw events returned by the upstream API, per source",
		},
		[]string{"source"},
	)

	FetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whalewatch_fetch_errors_total",
			Help: "Fetch cycles that failed entirely, per source",
		},
		[]string{"source"},
	)

	EventsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whalewatch_events_skipped_total",
			Help: "Events dropped before delivery, per source and reason",
		},
		[]string{"source", "reason"},
	)

	AlertsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whalewatch_alerts_emitted_total",
			Help: "Alerts that passed evaluation and dedup, per source",
		},
		[]string{"source"},
	)

	DeliveryFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whalewatch_delivery_failures_total",
			Help: "Failed delivery attempts, per sink",
		},
		[]string{"sink"},
	)

	LogFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "whalewatch_log_fallbacks_total",
			Help: "Durable-log appends that went through the fallback webhook",
		},
	)

	CycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "whalewatch_cycle_duration_seconds",
			Help:    "Duration of one full poll cycle",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Register registers all metrics with the default registry.
func Register() {
	prometheus.MustRegister(
		EventsFetched,
		FetchErrors,
		EventsSkipped,
		AlertsEmitted,
		DeliveryFailures,
		LogFallbacks,
		CycleDuration,
	)
}
