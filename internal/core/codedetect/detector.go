// Package codedetect implements the code-likelihood heuristic over raw
// message text. Verdicts are best-effort: structural indicators first, then
// a line-punctuation density fallback for multi-line text
package codedetect

import (
	"strings"

	"codefence/internal/core/codespan"
	"codefence/internal/core/rulepack"
)

// Reason indicates which stage produced a positive verdict
type Reason string

const (
	// ReasonIndicator means a structural indicator pattern matched
	ReasonIndicator Reason = "indicator"
	// ReasonDensity means the multi-line punctuation fallback fired
	ReasonDensity Reason = "density"
	// ReasonNone means the text was not judged code-like
	ReasonNone Reason = "none"
	// ReasonFormatted means the text already carries a code span and was skipped
	ReasonFormatted Reason = "formatted"
)

// Verdict carries the detection outcome plus enough detail to log or serve
type Verdict struct {
	Likely      bool
	Reason      Reason
	IndicatorID string // set when Reason == ReasonIndicator
	CodeLines   int    // counted lines when the density stage ran
}

// Detector evaluates text against a compiled rule pack. It is stateless and
// safe for concurrent use
type Detector struct {
	p       *rulepack.Pack
	charset map[rune]struct{}
}

// New creates a Detector over the given pack
func New(p *rulepack.Pack) *Detector {
	cs := make(map[rune]struct{}, len(p.Density.Charset))
	for _, r := range p.Density.Charset {
		cs[r] = struct{}{}
	}
	return &Detector{p: p, charset: cs}
}

// IsLikelyCode reports whether text plausibly contains unformatted source
// code. Text with an existing fenced or inline code span is never positive
func (d *Detector) IsLikelyCode(text string) bool {
	return d.Explain(text).Likely
}

// Explain runs the full pipeline and returns the detailed verdict.
// Stage order is fixed: formatted-span suppression, structural indicators,
// density fallback. Swapping the last two changes outcomes for borderline
// multi-line snippets
func (d *Detector) Explain(text string) Verdict {
	if text == "" {
		return Verdict{Reason: ReasonNone}
	}
	if codespan.HasFormatted(text) {
		return Verdict{Reason: ReasonFormatted}
	}

	for _, in := range d.p.Indicators {
		if in.Re.MatchString(text) {
			return Verdict{Likely: true, Reason: ReasonIndicator, IndicatorID: in.ID}
		}
	}

	// Density needs multiple lines to mean anything; single-line text can
	// only be flagged by an indicator above
	if strings.ContainsRune(text, '\n') {
		n := d.countCodeLines(text)
		if n >= d.p.Density.MinCodeLines {
			return Verdict{Likely: true, Reason: ReasonDensity, CodeLines: n}
		}
		return Verdict{Reason: ReasonNone, CodeLines: n}
	}

	return Verdict{Reason: ReasonNone}
}

// countCodeLines counts lines containing at least one charset rune
func (d *Detector) countCodeLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		for _, r := range line {
			if _, ok := d.charset[r]; ok {
				n++
				break
			}
		}
	}
	return n
}
