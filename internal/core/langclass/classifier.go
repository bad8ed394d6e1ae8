// Package langclass assigns a best-guess language label to code-like text.
// Classification is a fixed-order walk over the rule pack's language groups:
// the first group whose top-level disjunction matches wins, and refinement
// inside that group is first-match-wins as well. Determinism is preferred
// over accuracy
package langclass

import (
	"regexp"

	"codefence/internal/core/rulepack"
)

// Label is one of the fixed language labels
type Label string

// The full label set. Unknown is returned for empty or unrecognized input
const (
	Python     Label = "python"
	JavaScript Label = "javascript"
	TypeScript Label = "typescript"
	HTML       Label = "html"
	CSS        Label = "css"
	Java       Label = "java"
	CSharp     Label = "csharp"
	CPP        Label = "cpp"
	Unknown    Label = "unknown"
)

// Known reports whether l is a concrete language label
func (l Label) Known() bool { return l != Unknown && l != "" }

// Classifier evaluates text against the pack's language groups. Stateless
// and safe for concurrent use
type Classifier struct {
	p *rulepack.Pack
}

// New creates a Classifier over the given pack
func New(p *rulepack.Pack) *Classifier {
	return &Classifier{p: p}
}

// Classify returns the label for text, or Unknown. It never fails, for any
// input including the empty string, and is meaningful regardless of whether
// the text passed the code-likelihood detector
func (c *Classifier) Classify(text string) Label {
	if text == "" {
		return Unknown
	}
	for _, g := range c.p.Languages {
		if !matchAny(g.Match, text) {
			continue
		}
		for _, rf := range g.Refine {
			if matchAny(rf.Match, text) {
				return Label(rf.Label)
			}
		}
		if g.Label != "" {
			return Label(g.Label)
		}
		// group matched but has no default label and no refinement fired;
		// fall through to the next group
	}
	return Unknown
}

func matchAny(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
