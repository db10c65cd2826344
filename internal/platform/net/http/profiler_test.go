package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"parachute/internal/platform/config"
	phttp "parachute/internal/platform/net/http"
)

func TestMountProfiler(t *testing.T) {
	cases := []struct {
		name    string
		enabled bool
		path    string
		code    int
	}{
		{"index", true, "/debug/pprof/", http.StatusOK},
		{"cmdline", true, "/debug/pprof/cmdline", http.StatusOK},
		{"disabled", false, "/debug/pprof/", http.StatusNotFound},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			r := phttp.NewServer(config.New()).Router()
			phttp.MountProfiler(r, "debug/", tc.enabled)
			rec := httptest.NewRecorder()
			r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", tc.path, nil))
			if rec.Code != tc.code {
				t.Fatalf("GET %s = %d, want %d", tc.path, rec.Code, tc.code)
			}
		})
	}
}
