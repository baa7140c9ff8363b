package observability

import "github.com/prometheus/client_golang/prometheus"

// Metrics carries the rating-run instruments.
type Metrics struct {
	RatingRuns        *prometheus.CounterVec
	RatingRunSeconds  prometheus.Histogram
	MetersRated       prometheus.Counter
	MeterErrors       prometheus.Counter
	ConfigurationGaps prometheus.Counter
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		RatingRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "metrobill_rating_runs_total",
			Help: "Completed rating runs by outcome.",
		}, []string{"outcome"}),
		RatingRunSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "metrobill_rating_run_duration_seconds",
			Help:    "Wall time of a full tenant rating run.",
			Buckets: prometheus.DefBuckets,
		}),
		MetersRated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "metrobill_meters_rated_total",
			Help: "Meters priced across all runs.",
		}),
		MeterErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "metrobill_meter_errors_total",
			Help: "Meters rejected for invalid input.",
		}),
		ConfigurationGaps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "metrobill_configuration_gaps_total",
			Help: "Tolerant-degrade warnings recorded during rating.",
		}),
	}
	reg.MustRegister(m.RatingRuns, m.RatingRunSeconds, m.MetersRated, m.MeterErrors, m.ConfigurationGaps)
	return m
}
