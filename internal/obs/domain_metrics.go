package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// ReportsGeneratedTotal counts report computations by outcome.
	ReportsGeneratedTotal *prometheus.CounterVec
	// ReportDuration records report computation latency in milliseconds.
	ReportDuration prometheus.Histogram
	// ReportCacheTotal counts cache lookups for computed reports.
	ReportCacheTotal *prometheus.CounterVec
	// SkippedReferencesTotal counts purchase data dropped during aggregation
	// because its seller or SKU was not found in the roster/catalog.
	SkippedReferencesTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		ReportsGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "Count of seller report computations by outcome.",
		}, []string{"result"})
		ReportDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_ms",
			Help:      "Latency of seller report computations in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		})
		ReportCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_total",
			Help:      "Count of report cache lookups by outcome.",
		}, []string{"result"})
		SkippedReferencesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_references_total",
			Help:      "Count of purchase references skipped over unknown sellers or SKUs.",
		}, []string{"kind"})

		reg.MustRegister(ReportsGeneratedTotal, ReportDuration, ReportCacheTotal, SkippedReferencesTotal)
	})
}
