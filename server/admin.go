package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonwraymond/healthmock/health"
)

// NewAdminHandler returns the admin listener handler:
//
//	/healthz     200 while the process serves
//	/readyz      503 while any table entry is unhealthy
//	/components  JSON listing of every table entry
//	/metrics     Prometheus exposition, when gatherer is non-nil
//
// Unknown admin paths answer 404 with an empty body, like the mock port.
func NewAdminHandler(table *health.Table, gatherer prometheus.Gatherer) http.Handler {
	agg := health.NewAggregator(health.AggregatorConfig{
		Timeout:  2 * time.Second,
		Parallel: true,
	})
	agg.AddSource(table)

	mux := http.NewServeMux()
	health.RegisterHandlers(mux, agg)
	if gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pattern := mux.Handler(r); pattern == "" {
			notFound(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})
}
