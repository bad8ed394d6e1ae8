// Package api mounts the read-side HTTP surface: ad-hoc classification,
// detection-event stats, and health
package api

import (
	stdhttp "net/http"
	"time"

	"codefence/internal/core/codedetect"
	"codefence/internal/core/langclass"
	"codefence/internal/core/rulepack"
	"codefence/internal/core/sanitize"
	"codefence/internal/core/version"
	perr "codefence/internal/platform/errors"
	phttp "codefence/internal/platform/net/http"
	"codefence/internal/platform/net/http/bind"
	evdom "codefence/internal/services/events/domain"
)

// Options configures the mount
type Options struct {
	Pack   *rulepack.Pack
	Events evdom.ReaderPort
}

// handlers carries the wired dependencies
type handlers struct {
	det    *codedetect.Detector
	cls    *langclass.Classifier
	events evdom.ReaderPort
}

// Mount registers all routes on r
func Mount(r phttp.Router, opts Options) {
	h := &handlers{
		det:    codedetect.New(opts.Pack),
		cls:    langclass.New(opts.Pack),
		events: opts.Events,
	}

	r.Get("/healthz", h.health)
	r.Route("/v1", func(v1 phttp.Router) {
		v1.Post("/classify", h.classify)
		v1.Get("/stats", h.stats)
	})
}

func (h *handlers) health(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	phttp.RespondOK(w, r, version.Info("codefence-api"))
}

// classifyRequest is the POST /v1/classify payload
type classifyRequest struct {
	Text string `json:"text" validate:"required"`
}

// classifyResponse mirrors the core verdict plus the guessed label
type classifyResponse struct {
	IsCode    bool   `json:"is_code"`
	Reason    string `json:"reason"`
	Language  string `json:"language"`
	CodeLines int    `json:"code_lines,omitempty"`
}

func (h *handlers) classify(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	req, err := bind.ParseJSON[classifyRequest](r)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}

	text := sanitize.Clean(req.Text)
	verdict := h.det.Explain(text)
	resp := classifyResponse{
		IsCode:    verdict.Likely,
		Reason:    string(verdict.Reason),
		Language:  string(langclass.Unknown),
		CodeLines: verdict.CodeLines,
	}
	if verdict.Likely {
		resp.Language = string(h.cls.Classify(text))
	}
	phttp.RespondOK(w, r, resp)
}

// statsResponse is the GET /v1/stats payload
type statsResponse struct {
	Since     time.Time             `json:"since"`
	Languages []evdom.LanguageCount `json:"languages"`
}

func (h *handlers) stats(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	since := time.Now().UTC().Add(-24 * time.Hour)
	if raw := r.URL.Query().Get("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			phttp.RespondError(w, r, perr.InvalidArgf("since must be RFC3339"))
			return
		}
		since = t.UTC()
	}

	counts, err := h.events.CountByLanguage(r.Context(), since)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	phttp.RespondOK(w, r, statsResponse{Since: since, Languages: counts})
}
