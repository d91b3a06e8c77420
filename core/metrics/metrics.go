package metrics

import (
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "pq"

// MetricValue is a flattened sample taken from the registry.
type MetricValue struct {
	Name   string
	Labels map[string]string
	Value  float64 // counter value, or histogram sum
	Count  uint64  // histogram sample count; zero for counters
}

// Registry holds the measurement harness metrics on a private prometheus registry.
type Registry struct {
	reg       *prometheus.Registry
	durations *prometheus.HistogramVec
	ops       *prometheus.CounterVec
	errors    *prometheus.CounterVec
}

// NewRegistry creates a Registry with the duration histogram, the operation
// counter and the suite error counter registered.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_nanoseconds",
			Help:      "Latency of a single timed queue operation.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 12),
		}, []string{"impl", "op"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of timed queue operations.",
		}, []string{"impl", "op"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suite_errors_total",
			Help:      "Total number of suites aborted by an error.",
		}, []string{"suite"}),
	}
	r.reg.MustRegister(r.durations, r.ops, r.errors)
	return r
}

// Gatherer exposes the underlying registry, e.g. for promhttp.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ObserveOperation records one timed operation of impl.
func (r *Registry) ObserveOperation(impl, op string, d time.Duration) {
	r.durations.WithLabelValues(impl, op).Observe(float64(d.Nanoseconds()))
	r.ops.WithLabelValues(impl, op).Inc()
}

// RecordError counts a suite that ended in an error.
func (r *Registry) RecordError(suite string) {
	r.errors.WithLabelValues(suite).Inc()
}

// GetMetrics returns every sample currently held, keyed by fully qualified metric name.
func (r *Registry) GetMetrics() (map[string][]MetricValue, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	result := make(map[string][]MetricValue, len(families))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			v := MetricValue{
				Name:   mf.GetName(),
				Labels: labels(m),
			}
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				v.Value = m.GetCounter().GetValue()
			case dto.MetricType_HISTOGRAM:
				v.Value = m.GetHistogram().GetSampleSum()
				v.Count = m.GetHistogram().GetSampleCount()
			default:
				continue
			}
			result[mf.GetName()] = append(result[mf.GetName()], v)
		}
	}

	for _, values := range result {
		sort.Slice(values, func(i, j int) bool {
			return fmt.Sprint(values[i].Labels) < fmt.Sprint(values[j].Labels)
		})
	}
	return result, nil
}

func labels(m *dto.Metric) map[string]string {
	out := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		out[lp.GetName()] = lp.GetValue()
	}
	return out
}
