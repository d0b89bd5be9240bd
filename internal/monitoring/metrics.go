package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	signalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signal_engine_signals_total",
			Help: "Signals emitted, by symbol and side",
		},
		[]string{"symbol", "side"},
	)

	signalConfidence = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "signal_engine_signal_confidence",
			Help: "Confidence of the latest signal per symbol",
		},
		[]string{"symbol"},
	)

	scanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "signal_engine_scan_duration_seconds",
			Help:    "Wall time of a full watchlist scan",
			Buckets: prometheus.DefBuckets,
		},
	)

	evaluationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signal_engine_evaluation_errors_total",
			Help: "Evaluation failures, by error category",
		},
		[]string{"category"},
	)

	lastScanTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "signal_engine_last_scan_timestamp_seconds",
			Help: "Unix time of the last completed scan",
		},
	)
)

func init() {
	prometheus.MustRegister(signalsTotal)
	prometheus.MustRegister(signalConfidence)
	prometheus.MustRegister(scanDuration)
	prometheus.MustRegister(evaluationErrors)
	prometheus.MustRegister(lastScanTimestamp)
}

// MetricsHandler serves the Prometheus scrape endpoint.
type MetricsHandler struct{}

func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordSignal records one emitted signal.
func RecordSignal(symbol, side string, confidence float64) {
	signalsTotal.WithLabelValues(symbol, side).Inc()
	signalConfidence.WithLabelValues(symbol).Set(confidence)
}

// RecordScan records a completed watchlist scan.
func RecordScan(duration time.Duration) {
	scanDuration.Observe(duration.Seconds())
	lastScanTimestamp.SetToCurrentTime()
}

// RecordEvaluationError records a per-symbol evaluation failure.
func RecordEvaluationError(category string) {
	evaluationErrors.WithLabelValues(category).Inc()
}
