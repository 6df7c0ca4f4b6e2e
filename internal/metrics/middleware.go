package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// unmatchedRoute labels requests no route claimed, so scanners probing random
// paths collapse into one series.
const unmatchedRoute = "unknown"

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "folio",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of API requests by route pattern.",
			// Search and comment listing sit well under a second; the tail
			// buckets catch store stalls.
			Buckets: []float64{0.002, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 3},
		},
		[]string{"method", "route", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folio",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "API requests by route pattern and status code.",
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration, httpRequestsTotal)
}

// Middleware records one latency sample and one counter increment per request,
// labelled with the chi route pattern rather than the raw path. Requests whose
// path is listed in skip (typically the scrape endpoint) are not recorded.
func Middleware(skip ...string) func(next http.Handler) http.Handler {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skipped[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = normalizePath(rctx.RoutePattern())
			}
			labels := []string{r.Method, route, strconv.Itoa(status)}

			httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			httpRequestsTotal.WithLabelValues(labels...).Inc()
		})
	}
}

// normalizePath maps an empty route pattern to the unmatched label.
func normalizePath(pattern string) string {
	if pattern == "" {
		return unmatchedRoute
	}
	return pattern
}
