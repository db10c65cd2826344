package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "parachute/internal/platform/errors"
	lumnet "parachute/internal/platform/net"
	phttp "parachute/internal/platform/net/http"
)

func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(lumnet.WithRequest(req.Context(), rid))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.JSON(rec, http.StatusTeapot, map[string]any{"k": "v"})
	if rec.Code != http.StatusTeapot {
		t.Fatalf("JSON status: expected 418, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}
}

func TestRespondOKAndError(t *testing.T) {
	req := reqWithReqID("GET", "/x", "rid-1")

	rec := httptest.NewRecorder()
	phttp.RespondOK(rec, req, map[string]int{"best_time": 88})
	env := decode(t, rec)
	if rec.Code != 200 || env.StatusCode != 200 || env.RequestID != "rid-1" {
		t.Fatalf("bad envelope: %d %+v", rec.Code, env)
	}
	if m, ok := env.Data.(map[string]any); !ok || m["best_time"] != float64(88) {
		t.Fatalf("data = %#v", env.Data)
	}

	rec = httptest.NewRecorder()
	phttp.RespondError(rec, req, perr.NotFoundf("no such rule"))
	env = decode(t, rec)
	if rec.Code != http.StatusNotFound || env.Code != perr.ErrorCodeNotFound || env.Error != "no such rule" {
		t.Fatalf("bad error envelope: %d %+v", rec.Code, env)
	}
	if env.RequestID != "rid-1" || env.Data != nil {
		t.Fatalf("bad error envelope: %+v", env)
	}
}

func TestHandle_Responses(t *testing.T) {
	cases := []struct {
		name string
		resp phttp.Response
		code int
		body bool
	}{
		{"ok", phttp.OK([]int{1, 2}), http.StatusOK, true},
		{"zero status is 200", phttp.Response{Body: "x"}, http.StatusOK, true},
		{"accepted", phttp.Response{Status: http.StatusAccepted, Body: "queued"}, http.StatusAccepted, true},
		{"no content", phttp.NoContent(), http.StatusNoContent, false},
		{"project error", phttp.Error(perr.InvalidArgf("duration must be >= 0")), http.StatusUnprocessableEntity, true},
		{"foreign error", phttp.Error(errors.New("boom")), http.StatusInternalServerError, true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			h := phttp.Handle(func(*http.Request) phttp.Response { return tc.resp })
			rec := httptest.NewRecorder()
			h(rec, reqWithReqID("GET", "/", "rid"))
			if rec.Code != tc.code {
				t.Fatalf("code = %d, want %d", rec.Code, tc.code)
			}
			if !tc.body {
				if rec.Body.Len() != 0 {
					t.Fatalf("expected empty body, got %q", rec.Body.String())
				}
				return
			}
			if env := decode(t, rec); env.StatusCode != tc.code || env.RequestID != "rid" {
				t.Fatalf("envelope = %+v", env)
			}
		})
	}
}

func TestHandle_ExtraHeaders(t *testing.T) {
	h := phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Response{Body: "x", Header: http.Header{"X-Run-Id": {"run-1"}}}
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/", nil))
	if got := rec.Header().Get("X-Run-Id"); got != "run-1" {
		t.Fatalf("X-Run-Id = %q", got)
	}
}
