package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"parachute/internal/platform/net/http/bind"

	"github.com/go-chi/chi/v5"
)

type inDTO struct {
	N int `json:"n" validate:"min=1"`
}

func post(h Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestJSONHandler(t *testing.T) {
	t.Parallel()

	double := JSONHandler(func(_ *http.Request, in inDTO) (any, error) {
		return map[string]int{"doubled": in.N * 2}, nil
	})
	cases := []struct {
		name string
		body string
		code int
		want string
	}{
		{"success", `{"n":7}`, http.StatusOK, `"doubled":14`},
		{"bad json", `{`, http.StatusBadRequest, `"error"`},
		{"validation", `{"n":0}`, http.StatusBadRequest, `n must be at least 1`},
		{"unknown field", `{"n":1,"m":2}`, http.StatusBadRequest, `unknown field`},
	}
	for _, tc := range cases {
		rr := post(double, tc.body)
		if rr.Code != tc.code || !strings.Contains(rr.Body.String(), tc.want) {
			t.Fatalf("%s: code=%d body=%q", tc.name, rr.Code, rr.Body.String())
		}
	}
}

func TestJSONHandler_Errors(t *testing.T) {
	t.Parallel()

	h := JSONHandler(func(_ *http.Request, _ inDTO) (any, error) {
		return nil, errors.New("boom")
	})
	if rr := post(h, `{"n":1}`); rr.Code != http.StatusInternalServerError || !strings.Contains(rr.Body.String(), "boom") {
		t.Fatalf("handler error: code=%d body=%q", rr.Code, rr.Body.String())
	}

	limited := JSONHandler(func(_ *http.Request, _ inDTO) (any, error) {
		t.Fatal("handler should not run on oversize body")
		return nil, nil
	}, bind.JSONOptions{MaxBytes: 8, DisallowUnknown: true})
	if rr := post(limited, `{"n":1234567890}`); rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversize: code=%d body=%q", rr.Code, rr.Body.String())
	}

	custom := JSONHandler(func(_ *http.Request, _ inDTO) (any, error) {
		return Response{Status: http.StatusAccepted, Body: "later"}, nil
	})
	if rr := post(custom, `{"n":1}`); rr.Code != http.StatusAccepted {
		t.Fatalf("Response passthrough: code=%d", rr.Code)
	}
}

func TestSugar(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	GetJSON(r, "/g", func(_ *http.Request) (any, error) { return map[string]string{"ok": "get"}, nil })
	PostJSON(r, "/p", func(_ *http.Request, in inDTO) (any, error) { return map[string]int{"d": in.N * 2}, nil })
	PostRaw(r, "/raw", func(req *http.Request) (any, error) { return map[string]string{"ct": req.Header.Get("Content-Type")}, nil })

	do := func(method, path, ct, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", ct)
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, req)
		return rr
	}

	if rr := do(http.MethodGet, "/g", "", ""); rr.Code != 200 || !strings.Contains(rr.Body.String(), `"ok":"get"`) {
		t.Fatalf("GET /g => %d %q", rr.Code, rr.Body.String())
	}
	if rr := do(http.MethodPost, "/p", "application/json", `{"n":7}`); rr.Code != 200 || !strings.Contains(rr.Body.String(), `"d":14`) {
		t.Fatalf("POST /p => %d %q", rr.Code, rr.Body.String())
	}
	if rr := do(http.MethodPost, "/raw", "application/octet-stream", "\x00\x01"); rr.Code != 200 ||
		!strings.Contains(rr.Body.String(), "octet-stream") {
		t.Fatalf("POST /raw => %d %q", rr.Code, rr.Body.String())
	}
}
