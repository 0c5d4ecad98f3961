package api

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequests counts requests by handler and status code
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "velo_router_http_requests_total",
		Help: "Total HTTP requests by handler and status code",
	}, []string{"handler", "code"})

	// httpDuration tracks handler latency
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "velo_router_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	}, []string{"handler"})

	apiErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "velo_router_api_errors_total",
		Help: "Total API error responses by error code",
	}, []string{"error"})

	routeLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "velo_router_route_length_meters",
		Help:    "Length of planned routes in meters",
		Buckets: prometheus.ExponentialBuckets(100, 2, 12), // 100m to ~200km
	})
)

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) code() string {
	if r.status == 0 {
		return strconv.Itoa(http.StatusOK)
	}
	return strconv.Itoa(r.status)
}
