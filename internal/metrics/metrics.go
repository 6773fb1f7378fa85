package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/bookstore/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bookstore",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookstore",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Auth metrics

	AuthFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookstore",
		Name:      "auth_failures_total",
		Help:      "Requests rejected by the auth gate or the admin check, by reason.",
	}, []string{"reason"})

	// Catalog metrics, refreshed by the scheduler

	CatalogBooks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bookstore",
		Name:      "catalog_books",
		Help:      "Number of books in the catalog.",
	})

	CatalogStockUnits = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bookstore",
		Name:      "catalog_stock_units",
		Help:      "Sum of stock over all books.",
	})

	CatalogRefreshFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookstore",
		Name:      "catalog_refresh_failures_total",
		Help:      "Catalog stats refreshes that failed to read the store.",
	})
)

// RegisterHTTP registers the metrics the API server updates.
func RegisterHTTP() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		AuthFailuresTotal,
	)
}

// RegisterCatalog registers the metrics the scheduler updates.
func RegisterCatalog() {
	prometheus.MustRegister(
		CatalogBooks,
		CatalogStockUnits,
		CatalogRefreshFailuresTotal,
	)
}

// NewServer serves /metrics plus liveness and readiness probes backed by checker.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.Report) {
	w.Header().Set("Content-Type", "application/json")
	if !result.Up() {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(result)
}

