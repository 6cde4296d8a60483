// Package metrics provides the centralized Prometheus metrics registry for the analyzer.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ModelsTrainedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lol_analyzer",
		Name:      "models_trained_total",
		Help:      "Total number of models trained",
	})
	TrainingFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lol_analyzer",
		Name:      "training_failures_total",
		Help:      "Total number of failed training attempts by reason",
	}, []string{"reason"})
	ModelCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lol_analyzer",
		Name:      "model_cache_hits_total",
		Help:      "Total number of model cache hits",
	})
	ModelCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lol_analyzer",
		Name:      "model_cache_misses_total",
		Help:      "Total number of model cache misses",
	})
	ExtractionFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lol_analyzer",
		Name:      "extraction_failures_total",
		Help:      "Total number of per-match feature extraction failures",
	})
	TimelinesAnalyzedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lol_analyzer",
		Name:      "timelines_analyzed_total",
		Help:      "Total number of match timelines analyzed",
	})
)

// Gauge metrics
var (
	ModelCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "lol_analyzer",
		Name:      "model_cache_hit_ratio",
		Help:      "Ratio of model cache hits to total lookups",
	})
	CachedModels = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "lol_analyzer",
		Name:      "cached_models",
		Help:      "Number of trained models currently cached",
	})
)

// Histogram metrics
var (
	TrainingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lol_analyzer",
		Name:      "training_duration_seconds",
		Help:      "Time spent training one model",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	})
	ExtractionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lol_analyzer",
		Name:      "extraction_duration_seconds",
		Help:      "Time spent extracting features for one match",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	})
)

// Registry returns the process-wide registry, registering all collectors
// exactly once.
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			ModelsTrainedTotal,
			TrainingFailuresTotal,
			ModelCacheHitsTotal,
			ModelCacheMissesTotal,
			ExtractionFailuresTotal,
			TimelinesAnalyzedTotal,
			ModelCacheHitRatio,
			CachedModels,
			TrainingDuration,
			ExtractionDuration,
		)
	})
	return registry
}

// Handler returns an HTTP handler exposing the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}
