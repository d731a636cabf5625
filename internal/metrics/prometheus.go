package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Status label values for fibseq_generations_total.
const (
	StatusSuccess  = "success"
	StatusFailure  = "failure"
	StatusTimeout  = "timeout"
	StatusCanceled = "canceled"
)

// Metrics holds the collectors for generation runs. Each instance owns its
// registry, so independent instances never collide.
type Metrics struct {
	registry    *prometheus.Registry
	generations *prometheus.CounterVec
	terms       prometheus.Counter
	duration    *prometheus.HistogramVec
}

// NewMetrics creates a registry with the generation collectors and the Go
// runtime collector registered.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fibseq_generations_total",
				Help: "Number of sequence generations by generator and outcome.",
			},
			[]string{"generator", "status"},
		),
		terms: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fibseq_terms_generated_total",
			Help: "Number of Fibonacci terms produced by successful generations.",
		}),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fibseq_generation_duration_seconds",
				Help:    "Wall-clock duration of sequence generations.",
				Buckets: prometheus.ExponentialBuckets(0.00001, 10, 8),
			},
			[]string{"generator"},
		),
	}
	m.registry.MustRegister(
		m.generations,
		m.terms,
		m.duration,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveGeneration records one run. terms is only counted for successful runs.
func (m *Metrics) ObserveGeneration(generator, status string, terms int, d time.Duration) {
	m.generations.WithLabelValues(generator, status).Inc()
	m.duration.WithLabelValues(generator).Observe(d.Seconds())
	if status == StatusSuccess && terms > 0 {
		m.terms.Add(float64(terms))
	}
}

// WriteTextfile writes all collected metrics to path in the text exposition
// format, creating parent directories as needed. The file is replaced
// atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
