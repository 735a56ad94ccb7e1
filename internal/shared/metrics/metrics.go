package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Blueprint modes used as the metric label.
const (
	ModeAI        = "ai"
	ModeRuleBased = "rule-based"
)

var (
	registry = prometheus.NewRegistry()

	blueprintsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blueprints_generated_total",
			Help: "Blueprints returned, by mode",
		},
		[]string{"mode"},
	)
	aiFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ai_fallback_total",
		Help: "AI attempts that fell back to rule-based",
	})
	catalogFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_failures_total",
		Help: "Failed catalog fetches",
	})
	validationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "validation_failures_total",
		Help: "Rejected blueprint requests",
	})
	blueprintDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "blueprint_duration_ms",
		Help:    "Blueprint generation duration in milliseconds",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	})
)

func init() {
	registry.MustRegister(blueprintsGenerated, aiFallbacks, catalogFailures, validationFailures, blueprintDuration)
	// Both modes are exported from the first scrape.
	blueprintsGenerated.WithLabelValues(ModeAI)
	blueprintsGenerated.WithLabelValues(ModeRuleBased)
}

// IncBlueprintGenerated counts a returned blueprint by mode.
func IncBlueprintGenerated(mode string) {
	if mode != ModeAI {
		mode = ModeRuleBased
	}
	blueprintsGenerated.WithLabelValues(mode).Inc()
}

// IncAIFallback counts an AI attempt that fell back to the rule-based path.
func IncAIFallback() {
	aiFallbacks.Inc()
}

// IncCatalogFailure counts a failed catalog fetch.
func IncCatalogFailure() {
	catalogFailures.Inc()
}

// IncValidationFailure counts a rejected request body.
func IncValidationFailure() {
	validationFailures.Inc()
}

// ObserveBlueprintDurationMs records a blueprint duration in milliseconds.
func ObserveBlueprintDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	blueprintDuration.Observe(value)
}

// Registry returns the registry the blueprint metrics are registered on.
func Registry() *prometheus.Registry {
	return registry
}

// Handler exposes the registry in Prometheus exposition format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
