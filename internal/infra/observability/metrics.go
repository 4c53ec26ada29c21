package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
)

// Metrics holds all Prometheus metrics for the treasury service.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration    *prometheus.HistogramVec
	externalErrors     *prometheus.CounterVec
	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	transfersTotal     *prometheus.CounterVec
	validationFailures prometheus.Counter
	reportsTotal       *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "treasury_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treasury_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treasury_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treasury_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		transfersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treasury_transfers_total",
				Help: "Total transfer requests by outcome.",
			},
			[]string{"status"},
		),
		validationFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "treasury_validation_failures_total",
				Help: "Total individual validation failure reasons across rejected transfers.",
			},
		),
		reportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treasury_reports_total",
				Help: "Total reports generated by type.",
			},
			[]string{"type"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrTransfer increments the transfer counter with an outcome label
// ("executed" or "rejected").
func (m *Metrics) IncrTransfer(status string) {
	m.transfersTotal.WithLabelValues(status).Inc()
}

// AddValidationFailures records how many reasons a rejected transfer carried.
func (m *Metrics) AddValidationFailures(n int) {
	m.validationFailures.Add(float64(n))
}

// IncrReport increments the generated report counter for a report type.
func (m *Metrics) IncrReport(reportType string) {
	m.reportsTotal.WithLabelValues(reportType).Inc()
}

// GetLedgerSnapshot returns a snapshot of transfer-related metrics suitable
// for the GET /v1/metrics/ledger endpoint.
func (m *Metrics) GetLedgerSnapshot() *domain.LedgerMetrics {
	// Gather current values from Prometheus counters.
	// Note: Prometheus counters expose cumulative values.
	executed := getCounterValue(m.transfersTotal, "executed")
	rejected := getCounterValue(m.transfersTotal, "rejected")
	cacheHits := getCounterValue(m.cacheHits, "analytics")
	cacheMisses := getCounterValue(m.cacheMisses, "analytics")

	total := executed + rejected
	rejectionRate := float64(0)
	cacheHitRate := float64(0)

	if total > 0 {
		rejectionRate = rejected / total
	}
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	var failures float64
	out := &dto.Metric{}
	if m.validationFailures.Write(out) == nil && out.Counter != nil && out.Counter.Value != nil {
		failures = *out.Counter.Value
	}

	return &domain.LedgerMetrics{
		TransfersExecuted:  int64(executed),
		TransfersRejected:  int64(rejected),
		ValidationFailures: int64(failures),
		RejectionRate:      rejectionRate,
		CacheHitRate:       cacheHitRate,
		Period:             "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
