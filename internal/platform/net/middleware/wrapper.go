// Package middleware adapts chi middleware and adds the in-house access log,
// panic recovery and request metrics, without leaking chi types to callers
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	pstrings "parachute/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the standard net/http middleware shape
type Middleware = func(http.Handler) http.Handler

// RequestID attaches or propagates X-Request-ID and stores it on context
func RequestID() Middleware { return chimw.RequestID }

// RealIP sets RemoteAddr from X-Forwarded-For / X-Real-IP
func RealIP() Middleware { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// NoCache sets headers to disable client and proxy caching
func NoCache() Middleware { return chimw.NoCache }

// Compress compresses responses at level, e.g. flate.BestSpeed
func Compress(level int) Middleware { return chimw.Compress(level) }

// StripSlashes strips a trailing slash from the request path
func StripSlashes() Middleware { return chimw.StripSlashes }

// Throttle caps in-flight requests and answers 429 beyond that
func Throttle(limit int) Middleware { return chimw.Throttle(limit) }

// Heartbeat answers GET path with 200 before routing, for load balancers
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS wraps go-chi/cors. Empty origins allow any origin
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-ID"}),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"X-Request-ID", "X-Run-ID"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}

// Defaults is the baseline chain for every API route, outermost first.
// slow marks requests at or above it in the access log
func Defaults(timeout, slow time.Duration) []Middleware {
	return []Middleware{
		RealIP(),
		RequestID(),
		AccessLog(AccessLogOptions{Slow: slow}),
		RecoverJSON,
		Timeout(timeout),
		Compress(flate.BestSpeed),
		NoCache(),
	}
}
