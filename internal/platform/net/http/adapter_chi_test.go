package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func header(name string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set(name, "1")
			next.ServeHTTP(w, req)
		})
	}
}

func text(s string) Handler {
	return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = w.Write([]byte(s)) }
}

func TestAdaptChi_RootGroupRouteAndMux(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Use(header("X-Root"))
	r.Get("/root", text("root"))
	r.Head("/root", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(stdhttp.StatusNoContent) })
	r.Post("/root", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(stdhttp.StatusCreated) })
	r.Handle("/raw", stdhttp.HandlerFunc(text("raw")))

	r.Group(func(gr Router) {
		gr.Use(header("X-Group"))
		if gr.Mux() == nil {
			t.Fatalf("group Mux() returned nil")
		}
		gr.Get("/g/ping", text("g"))
	})

	r.Route("/api", func(sr Router) {
		sr.Use(header("X-Route"))
		sr.Route("/v1", func(v1 Router) {
			v1.Get("/ping", text("pong"))
		})
	})

	cases := []struct {
		method string
		path   string
		code   int
		body   string
		hdr    string
		nohdr  string
	}{
		{stdhttp.MethodGet, "/root", 200, "root", "X-Root", "X-Group"},
		{stdhttp.MethodHead, "/root", 204, "", "X-Root", ""},
		{stdhttp.MethodPost, "/root", 201, "", "X-Root", ""},
		{stdhttp.MethodGet, "/raw", 200, "raw", "X-Root", ""},
		{stdhttp.MethodGet, "/g/ping", 200, "g", "X-Group", "X-Route"},
		{stdhttp.MethodGet, "/api/v1/ping", 200, "pong", "X-Route", "X-Group"},
		{stdhttp.MethodGet, "/missing", 404, "", "X-Root", ""},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		if rr.Code != tc.code {
			t.Fatalf("%s %s code = %d, want %d", tc.method, tc.path, rr.Code, tc.code)
		}
		if tc.body != "" && rr.Body.String() != tc.body {
			t.Fatalf("%s %s body = %q, want %q", tc.method, tc.path, rr.Body.String(), tc.body)
		}
		if rr.Header().Get(tc.hdr) != "1" {
			t.Fatalf("%s %s missing header %s", tc.method, tc.path, tc.hdr)
		}
		if tc.nohdr != "" && rr.Header().Get(tc.nohdr) != "" {
			t.Fatalf("%s %s leaked header %s", tc.method, tc.path, tc.nohdr)
		}
	}
}
