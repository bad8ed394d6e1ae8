// Package codespan finds regions of a message that are already formatted as
// code: fenced blocks and inline single-backtick spans. A message containing
// any such span is left alone by the detector
package codespan

// Type identifies the kind of formatted span
type Type string

const (
	// TypeFence is a fenced block bounded by triple backticks
	TypeFence Type = "fence"
	// TypeInline is an inline span bounded by single backticks
	TypeInline Type = "inline"
)

// Span is a byte-range [Start,End) over the input, content only (backticks
// and the optional language tag excluded)
type Span struct {
	Type       Type
	Start, End int
}

// Detect scans text and returns spans for:
//   - fenced blocks: ``` plus an optional language tag, a newline, content,
//     and a closing ``` after a newline
//   - inline spans: any remaining pair of single backticks, fences excluded
//
// A fence opener without a well-formed close still yields inline spans from
// its backticks, so partially fenced text is still treated as formatted
func Detect(text string) []Span {
	if text == "" {
		return nil
	}
	var out []Span
	var fences [][2]int // delimiter-inclusive extents for masking

	for i := 0; i+2 < len(text); {
		if text[i] != '`' || text[i+1] != '`' || text[i+2] != '`' {
			i++
			continue
		}
		j := i + 3
		// optional language tag up to the newline
		k := j
		for k < len(text) && isTagByte(text[k]) {
			k++
		}
		if k >= len(text) || text[k] != '\n' {
			i++
			continue // no newline after the opener; not a well-formed fence
		}
		close := indexClosingFence(text, k+1)
		if close < 0 {
			i++
			continue
		}
		out = append(out, Span{Type: TypeFence, Start: k + 1, End: close})
		fences = append(fences, [2]int{i, close + 4}) // past "\n```"
		i = close + 4
	}

	inFence := func(pos int) bool {
		for _, f := range fences {
			if pos >= f[0] && pos < f[1] {
				return true
			}
		}
		return false
	}

	// Inline spans: pair up remaining backticks left to right
	for i := 0; i < len(text); i++ {
		if text[i] != '`' || inFence(i) {
			continue
		}
		j := i + 1
		for j < len(text) && (text[j] != '`' || inFence(j)) {
			j++
		}
		if j < len(text) {
			out = append(out, Span{Type: TypeInline, Start: i + 1, End: j})
			i = j
		}
	}

	return out
}

// HasFormatted reports whether text contains at least one formatted span
func HasFormatted(text string) bool {
	return len(Detect(text)) > 0
}

func isTagByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// indexClosingFence finds a "```" preceded by a newline, returning the index
// of that newline
func indexClosingFence(s string, from int) int {
	for i := from; i+4 <= len(s); i++ {
		if s[i] == '\n' && s[i+1] == '`' && s[i+2] == '`' && s[i+3] == '`' {
			return i
		}
	}
	return -1
}
