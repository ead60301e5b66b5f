// Package metrics exposes Prometheus collectors for the temple map.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ReconcileTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "torii_reconcile_total",
		Help: "Total view reconciliations by active filter",
	}, []string{"filter"})
	ResultSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "torii_result_size",
		Help:    "Number of records matched per reconciliation",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 500},
	})
	EmptyResultsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "torii_empty_results_total",
		Help: "Total reconciliations that matched no records",
	})
	DatasetRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "torii_dataset_records",
		Help: "Number of records in the current store",
	})
	DatasetReloadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "torii_dataset_reloads_total",
		Help: "Total dataset reloads triggered by the file watcher",
	})
)

func init() {
	prometheus.MustRegister(ReconcileTotal)
	prometheus.MustRegister(ResultSize)
	prometheus.MustRegister(EmptyResultsTotal)
	prometheus.MustRegister(DatasetRecords)
	prometheus.MustRegister(DatasetReloadsTotal)
}

// ObserveReconcile records one reconciliation.
func ObserveReconcile(filter string, n int) {
	ReconcileTotal.WithLabelValues(filter).Inc()
	ResultSize.Observe(float64(n))
	if n == 0 {
		EmptyResultsTotal.Inc()
	}
}

// Handler serves the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
