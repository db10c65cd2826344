package middleware

import (
	"net/http"
	"runtime/debug"

	perr "parachute/internal/platform/errors"
	"parachute/internal/platform/logger"
	pnet "parachute/internal/platform/net"
	phttp "parachute/internal/platform/net/http"
)

// RecoverJSON turns a panic into a 500 envelope and logs the stack.
// http.ErrAbortHandler is re-raised so the server can abort the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(logger.WithRequest(r.Context(), reqID)).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			status, body := pnet.Error(perr.PanicErrf("panic recovered"), reqID)
			phttp.JSON(w, status, body)
		}()
		next.ServeHTTP(w, r)
	})
}
