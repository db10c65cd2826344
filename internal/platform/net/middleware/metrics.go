package middleware

import (
	"net/http"
	"strconv"
	"time"

	"parachute/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Metrics counts requests and observes latency per route pattern, so
// /api/v1/rules and /api/v1/rules/{id} never explode label cardinality
func Metrics(reg *metrics.Registry) Middleware {
	requests := reg.Counter("http_requests_total", "HTTP requests by route and status.", "method", "route", "status")
	latency := reg.Histogram("http_request_duration_seconds", "HTTP request latency.", nil, "method", "route")
	inflight := reg.Gauge("http_in_flight_requests", "HTTP requests being served.").WithLabelValues()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inflight.Inc()
			defer inflight.Dec()

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					route = p
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			latency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
