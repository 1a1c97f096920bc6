// SPDX-License-Identifier: MIT

package calc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels of the calculations counter.
const (
	OutcomeSuccess     = "success"
	OutcomeBuildError  = "build_error"
	OutcomeSolverError = "solver_error"
	OutcomeCanceled    = "canceled"
	OutcomeError       = "error"
)

// Metrics are the Prometheus collectors of a Calculator. A nil *Metrics
// records nothing.
type Metrics struct {
	calculations *prometheus.CounterVec
	duration     prometheus.Histogram
	gaps         prometheus.Counter
	columns      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lca",
			Name:      "calculations_total",
			Help:      "Calculations by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lca",
			Name:      "calculation_duration_seconds",
			Help:      "Wall time of a calculation from inventory build to results.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		gaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lca",
			Name:      "linking_gaps_total",
			Help:      "Technical exchanges left without provider.",
		}),
		columns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lca",
			Name:      "technology_columns",
			Help:      "Columns of the most recently built technology matrix.",
		}),
	}
	for _, c := range []prometheus.Collector{m.calculations, m.duration, m.gaps, m.columns} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observe(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) inventory(columns, gaps int) {
	if m == nil {
		return
	}
	m.columns.Set(float64(columns))
	m.gaps.Add(float64(gaps))
}
