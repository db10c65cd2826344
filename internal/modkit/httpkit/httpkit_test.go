package httpkit

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "parachute/internal/platform/errors"
	"parachute/internal/platform/metrics"
	phttp "parachute/internal/platform/net/http"
	kit "parachute/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func run(h http.Handler, method, path, body string) (*httptest.ResponseRecorder, Envelope) {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, rd))
	var env Envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	return rr, env
}

type echoIn struct {
	Text string `json:"text" validate:"required"`
}

func TestSugar_Routes(t *testing.T) {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)

	Get(r, "/get", func(*http.Request) (any, error) { return map[string]int{"n": 1}, nil })
	PostJSON(r, "/json", func(_ *http.Request, in echoIn) (any, error) { return in.Text, nil })
	PostRaw(r, "/raw", func(r *http.Request) (any, error) {
		b, _ := io.ReadAll(r.Body)
		return len(b), nil
	})
	r.Get("/none", Handle(func(*http.Request) Response { return NoContent() }))
	r.Get("/fail", Call(func(*http.Request) (any, error) { return nil, perr.NotFoundf("no such rule") }))

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		data   string
	}{
		{"get", http.MethodGet, "/get", "", http.StatusOK, `{"n":1}`},
		{"json", http.MethodPost, "/json", `{"text":"空降"}`, http.StatusOK, `"空降"`},
		{"json invalid", http.MethodPost, "/json", `{}`, http.StatusBadRequest, ""},
		{"raw", http.MethodPost, "/raw", "abcd", http.StatusOK, "4"},
		{"no content", http.MethodGet, "/none", "", http.StatusNoContent, ""},
		{"not found", http.MethodGet, "/fail", "", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rr, env := run(mux, tc.method, tc.path, tc.body)
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", rr.Code, tc.status, rr.Body.String())
			}
			if tc.data != "" {
				got, _ := json.Marshal(env.Data)
				if string(got) != tc.data {
					t.Fatalf("data = %s, want %s", got, tc.data)
				}
			}
		})
	}
}

func TestAliases_Constructors(t *testing.T) {
	if OK("x").Status != http.StatusOK {
		t.Fatal("OK status")
	}
	if NoContent().Status != http.StatusNoContent {
		t.Fatal("NoContent status")
	}
	if Error(errors.New("boom")).Body == nil {
		t.Fatal("Error body")
	}
}

func TestMountAPIV1_AppliesStack(t *testing.T) {
	reg := metrics.New(metrics.Options{Subsystem: "httpkit"})
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)

	MountAPIV1(r, CommonStack(StackOptions{Metrics: reg}), func(api Router) {
		MountUnder(api, "/rules", nil, func(rr Router) {
			Get(rr, "/", func(*http.Request) (any, error) { return "ok", nil })
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rules", nil)
	req.Header.Set("X-Request-ID", "rid-7")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.RequestID != "rid-7" {
		t.Fatalf("request id = %q", env.RequestID)
	}

	mr := httptest.NewRecorder()
	reg.Handler().ServeHTTP(mr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	kit.MustContain(t, mr.Body.String(), `route="/api/v1/rules`)
}
