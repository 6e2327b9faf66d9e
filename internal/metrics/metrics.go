package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quality_moderation"

// QualityMetrics tracks status evaluations and verdict writes.
//
// Metrics:
//   - quality_moderation_evaluations_total: reports computed, by outcome
//   - quality_moderation_evaluation_duration_seconds: time to load verdicts and evaluate
//   - quality_moderation_verdict_upserts_total: verdict writes, by passed value
//   - quality_moderation_store_errors_total: verdict store failures, by operation
type QualityMetrics struct {
	registry *prometheus.Registry

	evaluationsTotal   *prometheus.CounterVec
	evaluationDuration prometheus.Histogram
	upsertsTotal       *prometheus.CounterVec
	storeErrorsTotal   *prometheus.CounterVec
}

// NewQualityMetrics creates the metrics on a fresh registry, together with
// the Go runtime and process collectors.
func NewQualityMetrics() *QualityMetrics {
	m := &QualityMetrics{
		registry: prometheus.NewRegistry(),

		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evaluations_total",
				Help:      "Total number of compliance reports computed",
			},
			[]string{"outcome"},
		),

		evaluationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of loading verdicts and evaluating one app",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 100µs to ~1.6s
			},
		),

		upsertsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "verdict_upserts_total",
				Help:      "Total number of moderator verdict writes",
			},
			[]string{"passed"},
		),

		storeErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_errors_total",
				Help:      "Total number of verdict store failures",
			},
			[]string{"operation"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.evaluationsTotal,
		m.evaluationDuration,
		m.upsertsTotal,
		m.storeErrorsTotal,
	)
	return m
}

// RecordEvaluation records one computed report. Safe on a nil receiver.
func (m *QualityMetrics) RecordEvaluation(passes bool, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "fail"
	if passes {
		outcome = "pass"
	}
	m.evaluationsTotal.WithLabelValues(outcome).Inc()
	m.evaluationDuration.Observe(duration.Seconds())
}

func (m *QualityMetrics) RecordUpsert(passed bool) {
	if m == nil {
		return
	}
	m.upsertsTotal.WithLabelValues(strconv.FormatBool(passed)).Inc()
}

func (m *QualityMetrics) RecordStoreError(operation string) {
	if m == nil {
		return
	}
	m.storeErrorsTotal.WithLabelValues(operation).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *QualityMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry:      m.registry,
		ErrorHandling: promhttp.ContinueOnError,
	})
}
