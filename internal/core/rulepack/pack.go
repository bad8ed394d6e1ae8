// Package rulepack loads and compiles the detection rules from the embedded
// rules.json: structural code indicators, the density-fallback config, and
// the ordered language rule groups used by the classifier
package rulepack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
)

//go:embed rules.json
var embedded []byte

type rawIndicator struct {
	ID      string `json:"id"`
	Pattern string `json:"pattern"`
}

type rawRefinement struct {
	Label string   `json:"label"`
	Match []string `json:"match"`
}

type rawGroup struct {
	Label  string          `json:"label"`
	Match  []string        `json:"match"`
	Refine []rawRefinement `json:"refine,omitempty"`
}

type rawPack struct {
	Version    int            `json:"version"`
	Meta       map[string]any `json:"meta"`
	Indicators []rawIndicator `json:"indicators"`
	Density    Density        `json:"density"`
	Languages  []rawGroup     `json:"languages"`
}

// Indicator is a compiled structural code indicator
type Indicator struct {
	ID string
	Re *regexp.Regexp
}

// Density configures the line-punctuation fallback of the detector
type Density struct {
	// Charset is the punctuation set a line must intersect to count
	Charset string `json:"charset"`
	// MinCodeLines is the minimum number of counting lines for a positive
	// verdict (strictly more than MinCodeLines-1)
	MinCodeLines int `json:"min_code_lines"`
}

// Refinement is a compiled sub-rule inside a language group
type Refinement struct {
	Label string
	Match []*regexp.Regexp
}

// Group is a compiled language rule group. Groups are evaluated in pack
// order; the first group whose Match disjunction fires wins. A group with
// refinements resolves to the first matching refinement label, else to its
// own Label; an empty Label means fall through to the next group
type Group struct {
	Label  string
	Match  []*regexp.Regexp
	Refine []Refinement
}

// Pack is the compiled rule pack shared by detector and classifier
type Pack struct {
	Version    int
	Meta       map[string]any
	Indicators []Indicator
	Density    Density
	Languages  []Group
}

// Load parses and compiles the embedded rules.json
func Load() (*Pack, error) {
	return Parse(embedded)
}

// Parse compiles a rule pack from raw JSON (exported for tests and tooling)
func Parse(data []byte) (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, fmt.Errorf("rulepack: parse rules.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("rulepack: unsupported rules.json version %d (want 1)", rp.Version)
	}
	if rp.Density.Charset == "" || rp.Density.MinCodeLines <= 0 {
		return nil, fmt.Errorf("rulepack: density config incomplete")
	}

	p := &Pack{
		Version: rp.Version,
		Meta:    rp.Meta,
		Density: rp.Density,
	}

	for _, in := range rp.Indicators {
		re, err := regexp.Compile(in.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rulepack: compile indicator %q: %w", in.ID, err)
		}
		p.Indicators = append(p.Indicators, Indicator{ID: in.ID, Re: re})
	}

	for gi, g := range rp.Languages {
		cg := Group{Label: g.Label}
		if len(g.Match) == 0 {
			return nil, fmt.Errorf("rulepack: language group %d has no match patterns", gi)
		}
		for _, pat := range g.Match {
			re, err := regexp.Compile(pat)
			if err != nil {
				return nil, fmt.Errorf("rulepack: compile group %d pattern %q: %w", gi, pat, err)
			}
			cg.Match = append(cg.Match, re)
		}
		for _, rf := range g.Refine {
			if rf.Label == "" {
				return nil, fmt.Errorf("rulepack: group %d refinement without label", gi)
			}
			cr := Refinement{Label: rf.Label}
			for _, pat := range rf.Match {
				re, err := regexp.Compile(pat)
				if err != nil {
					return nil, fmt.Errorf("rulepack: compile refinement %q pattern %q: %w", rf.Label, pat, err)
				}
				cr.Match = append(cr.Match, re)
			}
			cg.Refine = append(cg.Refine, cr)
		}
		p.Languages = append(p.Languages, cg)
	}

	return p, nil
}
