package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	perr "codefence/internal/platform/errors"
	pnet "codefence/internal/platform/net"
)

func TestRespondOK(t *testing.T) {
	req := httptest.NewRequest(stdhttp.MethodGet, "/x", nil)
	req = req.WithContext(pnet.WithRequestID(req.Context(), "rid-1"))
	rec := httptest.NewRecorder()

	RespondOK(rec, req, map[string]string{"k": "v"})

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.StatusCode != 200 || env.Status != "OK" || env.RequestID != "rid-1" {
		t.Fatalf("envelope = %+v", env)
	}
	data := env.Data.(map[string]any)
	if data["k"] != "v" {
		t.Fatalf("data = %v", env.Data)
	}
}

func TestRespondError_MapsTaxonomy(t *testing.T) {
	req := httptest.NewRequest(stdhttp.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()

	RespondError(rec, req, perr.NotFoundf("no such channel"))

	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Code != perr.ErrorCodeNotFound || env.Error != "no such channel" {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Data != nil {
		t.Fatalf("error envelope carries data: %v", env.Data)
	}
}

func TestRespondError_ForeignErrorIs500(t *testing.T) {
	req := httptest.NewRequest(stdhttp.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()

	RespondError(rec, req, assertAnError())

	if rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func assertAnError() error { return errPlain{} }

type errPlain struct{}

func (errPlain) Error() string { return "plain failure" }
