package comparison

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// comparisonDuration tracks the time spent computing comparisons.
	comparisonDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "comparison_calculation_duration_seconds",
		Help:    "Time taken for comparison calculation by mode",
		Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1, 2, 5},
	}, []string{"mode"}) // mode: compare, full_basket

	// comparisonErrors tracks failed comparison calls.
	comparisonErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comparison_calculation_errors_total",
		Help: "Total number of comparison errors by mode",
	}, []string{"mode"})

	// basketSize tracks the distribution of basket sizes.
	basketSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "comparison_basket_products_count",
		Help:    "Number of distinct products in comparison requests",
		Buckets: []float64{1, 5, 10, 20, 50, 100},
	})

	// marketCount tracks how many markets each comparison returns.
	marketCount = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "comparison_markets_returned_count",
		Help:    "Number of markets returned by mode",
		Buckets: []float64{1, 5, 10, 20, 50, 100},
	}, []string{"mode"})

	// coverageRatio tracks the coverage of the best-ranked market.
	coverageRatio = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "comparison_top_result_coverage_ratio",
		Help:    "Coverage ratio of the best-ranked market",
		Buckets: []float64{0.25, 0.5, 0.75, 0.9, 1.0},
	})

	// marketDistance tracks computed shopper-to-market distances.
	marketDistance = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "comparison_market_distance_km",
		Help:    "Distance from shopper to compared markets in kilometers",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 50},
	})
)

// MetricsRecorder provides methods to record comparison metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordComparisonDuration records the duration of a comparison call.
func (m *MetricsRecorder) RecordComparisonDuration(mode string, duration time.Duration) {
	comparisonDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordComparisonError records a failed comparison call.
func (m *MetricsRecorder) RecordComparisonError(mode string) {
	comparisonErrors.WithLabelValues(mode).Inc()
}

// RecordBasketSize records the size of a requested basket.
func (m *MetricsRecorder) RecordBasketSize(size int) {
	basketSize.Observe(float64(size))
}

// RecordMarketCount records how many markets a comparison returned.
func (m *MetricsRecorder) RecordMarketCount(mode string, count int) {
	marketCount.WithLabelValues(mode).Observe(float64(count))
}

// RecordCoverageRatio records the coverage ratio of the best result.
func (m *MetricsRecorder) RecordCoverageRatio(ratio float64) {
	coverageRatio.Observe(ratio)
}

// RecordMarketDistance records a computed shopper-to-market distance.
func (m *MetricsRecorder) RecordMarketDistance(distanceKm float64) {
	marketDistance.Observe(distanceKm)
}
