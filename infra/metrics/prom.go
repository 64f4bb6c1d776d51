package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/ewoodward/gridshift/core/metrics"
)

// reductionBuckets cover the plausible range of relative CO2 savings in
// percent, including negative values when a shift backfires.
var reductionBuckets = []float64{-10, -5, 0, 2.5, 5, 7.5, 10, 15, 20, 25, 30, 40, 50}

// PromSink records simulation events in Prometheus metrics.
type PromSink struct {
	simulated *prometheus.CounterVec
	skipped   *prometheus.CounterVec
	reduction *prometheus.HistogramVec
	lastRun   prometheus.Gauge
}

// NewPromSink registers simulation metrics on the default Prometheus
// registerer. The metrics HTTP server is started separately.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	simulated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gridshift_days_simulated_total",
		Help: "Total number of simulated day results",
	}, []string{"strategy"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gridshift_days_skipped_total",
		Help: "Number of day results flagged invalid and excluded from summaries",
	}, []string{"strategy"})
	reduction := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gridshift_reduction_pct",
		Help:    "Relative CO2 reduction per simulated day in percent",
		Buckets: reductionBuckets,
	}, []string{"strategy"})
	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gridshift_last_run_timestamp_seconds",
		Help: "Unix timestamp of the last completed simulation run",
	})

	if err := reg.Register(simulated); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			simulated = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(skipped); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			skipped = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(reduction); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			reduction = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(lastRun); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			lastRun = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{simulated: simulated, skipped: skipped, reduction: reduction, lastRun: lastRun}, nil
}

// Close implements coremetrics.Sink. Prometheus collectors need no teardown.
func (s *PromSink) Close() error { return nil }

// RecordDay increments per-strategy counters and observes the reduction.
// Invalid days count as skipped and do not feed the histogram.
func (s *PromSink) RecordDay(ev coremetrics.DayEvent) error {
	r := ev.Result
	s.simulated.WithLabelValues(r.Strategy).Inc()
	if !r.Valid {
		s.skipped.WithLabelValues(r.Strategy).Inc()
		return nil
	}
	s.reduction.WithLabelValues(r.Strategy).Observe(r.ReductionPct)
	return nil
}

// RecordRun updates the last-run timestamp gauge.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	ts := ev.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	s.lastRun.Set(float64(ts.Unix()))
	return nil
}
