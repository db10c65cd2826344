package httpkit

import (
	"net/http"
	"time"

	"parachute/internal/platform/metrics"
	"parachute/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Timeout     time.Duration // 0 means 30s
	SlowRequest time.Duration
	CORSOrigins []string
	Metrics     *metrics.Registry // nil skips request metrics
}

// CommonStack returns the baseline middleware for versioned API routes
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	mw := []func(http.Handler) http.Handler{
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
	}
	mw = append(mw, middleware.Defaults(o.Timeout, o.SlowRequest)...)
	if o.Metrics != nil {
		mw = append(mw, middleware.Metrics(o.Metrics))
	}
	return append(mw, middleware.StripSlashes())
}
