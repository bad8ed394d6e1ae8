package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrs.New("boom")
	err := Wrap(cause, ErrorCodeDB, "insert event")
	if !stderrs.Is(err, cause) {
		t.Fatalf("wrapped cause lost")
	}
	if CodeOf(err) != ErrorCodeDB {
		t.Fatalf("code lost: %v", CodeOf(err))
	}
	if err.Error() != "insert event: boom" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrorCodeNotFound:        http.StatusNotFound,
		ErrorCodeValidation:      http.StatusBadRequest,
		ErrorCodeJSON:            http.StatusBadRequest,
		ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
		ErrorCodeDuplicateKey:    http.StatusConflict,
		ErrorCodeUpstream:        http.StatusServiceUnavailable,
		ErrorCodeUnknown:         http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatusCode(code); got != want {
			t.Fatalf("code %d -> %d, want %d", code, got, want)
		}
	}
}

func TestWireFrom_ForeignError(t *testing.T) {
	w := WireFrom(stderrs.New("plain"))
	if w.Code != ErrorCodeUnknown || w.Message != "plain" {
		t.Fatalf("unexpected wire %+v", w)
	}
}

func TestWithField(t *testing.T) {
	err := New(ErrorCodeValidation, "text required")
	err = WithField(err, "text")
	e, ok := As(err)
	if !ok || e.Field() != "text" {
		t.Fatalf("field not attached: %+v", e)
	}
}

func TestRetryable_Upstream(t *testing.T) {
	if !Retryable(Upstreamf("discord 502")) {
		t.Fatalf("upstream errors are transient")
	}
	if Retryable(New(ErrorCodeValidation, "bad input")) {
		t.Fatalf("validation is not transient")
	}
}
