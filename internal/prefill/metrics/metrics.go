package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	PrefillTotal        *prometheus.CounterVec
	PensionDegradations prometheus.Counter
	UpstreamLatency     *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		PrefillTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sedprefill_prefill_total",
			Help: "Total number of prefill requests by SED type and outcome",
		}, []string{"sed_type", "outcome"}),
		PensionDegradations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sedprefill_pension_degradations_total",
			Help: "Total number of prefills that degraded to an empty pension block",
		}),
		UpstreamLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sedprefill_upstream_fetch_duration_seconds",
			Help:    "Latency of collaborator fetches by source",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source"}),
	}
}

// ObservePrefill counts one prefill attempt by document type and outcome.
func (m *Metrics) ObservePrefill(sedType, outcome string) {
	if m != nil {
		m.PrefillTotal.WithLabelValues(sedType, outcome).Inc()
	}
}

// ObservePensionDegradation counts a prefill that fell back to an empty
// pension block.
func (m *Metrics) ObservePensionDegradation() {
	if m != nil {
		m.PensionDegradations.Inc()
	}
}

// ObserveUpstreamLatency records the duration of one collaborator fetch.
func (m *Metrics) ObserveUpstreamLatency(source string, d time.Duration) {
	if m != nil {
		m.UpstreamLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}
