package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/scheduling-api/internal/httperr"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5},
		},
		[]string{"method", "path"},
	)
)

var (
	CatalogOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_operations_total",
			Help: "Catalog operations by entity and outcome",
		},
		[]string{"entity", "operation", "outcome"},
	)
)

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(CatalogOperations)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Outcome labels an operation result: "ok", the business code, or "error".
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if code, ok := httperr.BusinessCode(err); ok {
		return code
	}
	return "error"
}

func ObserveOperation(entity, operation string, err error) {
	CatalogOperations.WithLabelValues(entity, operation, Outcome(err)).Inc()
}
