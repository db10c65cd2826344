package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeTooLarge, http.StatusRequestEntityTooLarge},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	if got := ErrorCodeTooLarge.String(); got != "too_large" {
		t.Fatalf("String() = %q", got)
	}
	if got := ErrorCode(900).String(); got != "code_900" {
		t.Fatalf("String() for unknown = %q", got)
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := New(ErrorCodeValidation, "bad stuff")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeJSON, "bad json %d", 12)
	if got := e2.Error(); got != "bad json 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeUnavailable, "read buffer")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	e4 := Wrapf(src, ErrorCodeNotFound, "open %s", "day1.bin")
	if want := "open day1.bin: root"; e4.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e4.Error(), want)
	}

	if got, ok := As(e4); !ok || got.Code() != ErrorCodeNotFound {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	e5 := Wrap(src, ErrorCodeInvalidArgument, "oops")
	e6 := WithField(e5, "duration_seconds")
	e7 := WithOp(e6, "infer")
	if fe, ok := As(e6); !ok || fe.Field() != "duration_seconds" {
		t.Fatalf("WithField failed")
	}
	if oe, ok := As(e7); !ok || oe.Op() != "infer" {
		t.Fatalf("WithOp failed")
	}
	if fe0, _ := As(e5); fe0.Field() != "" || fe0.Op() != "" {
		t.Fatalf("copy-on-write mutated original")
	}
	if WithOp(src, "x") != src {
		t.Fatalf("WithOp should leave foreign errors alone")
	}
	if WithField(nil, "x") != nil {
		t.Fatalf("WithField(nil) should be nil")
	}

	wrapped := WithField(src, "data")
	we, ok := As(wrapped)
	if !ok || we.Field() != "data" || we.Code() != ErrorCodeUnknown {
		t.Fatalf("WithField on foreign error: %+v", we)
	}
}

func TestWireAndHTTP(t *testing.T) {
	src := stderrs.New("root")

	w := (&Error{code: ErrorCodeValidation, msg: "nope", field: "text"}).ToWire()
	if w.Code != ErrorCodeValidation || w.Message != "nope" || w.Field != "text" {
		t.Fatalf("ToWire mismatch: %+v", w)
	}
	if wf := WireFrom(nil); wf != (Wire{}) {
		t.Fatalf("WireFrom(nil) expected zero, got %+v", wf)
	}
	if wf := WireFrom(src); wf.Code != ErrorCodeUnknown || wf.Message != "root" {
		t.Fatalf("WireFrom(foreign) mismatch: %+v", wf)
	}
	// only the message, never "msg: orig"
	if wf := WireFrom(Wrap(src, ErrorCodeJSON, "bad body")); wf.Message != "bad body" {
		t.Fatalf("WireFrom(ours) message = %q", wf.Message)
	}

	if st, _ := HTTP(nil); st != http.StatusOK {
		t.Fatalf("HTTP(nil) status = %d", st)
	}
	st, wire := HTTP(TooLargef("body over %d bytes", 10))
	if st != http.StatusRequestEntityTooLarge || wire.Code != ErrorCodeTooLarge {
		t.Fatalf("HTTP(TooLarge) = %d %+v", st, wire)
	}
}

func TestSugarAndHelpers(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{NotFoundf("x"), ErrorCodeNotFound},
		{InvalidArgf("x"), ErrorCodeInvalidArgument},
		{JSONErrf("x"), ErrorCodeJSON},
		{TooLargef("x"), ErrorCodeTooLarge},
		{PanicErrf("x"), ErrorCodePanic},
		{New(ErrorCodeUnavailable, "x"), ErrorCodeUnavailable},
		{Internalf("x"), ErrorCodeUnknown},
	}
	for _, tc := range cases {
		if !IsCode(tc.err, tc.code) {
			t.Fatalf("%v: code = %v, want %v", tc.err, CodeOf(tc.err), tc.code)
		}
	}

	src := stderrs.New("root")
	if WrapIf(nil, ErrorCodeUnknown, "ignored") != nil {
		t.Fatalf("WrapIf(nil) should return nil")
	}
	if !IsCode(WrapIf(src, ErrorCodeTimeout, "slow"), ErrorCodeTimeout) {
		t.Fatalf("WrapIf(non-nil) should wrap")
	}

	deep := fmt.Errorf("level2: %w", fmt.Errorf("level1: %w", src))
	if got := Root(deep); got == nil || got.Error() != "root" {
		t.Fatalf("Root() failed, got %v", got)
	}
	if Root(nil) != nil {
		t.Fatalf("Root(nil) should be nil")
	}
}
