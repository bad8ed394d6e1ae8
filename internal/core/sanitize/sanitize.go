// Package sanitize prepares raw chat text for classification. It repairs
// invalid UTF-8 and strips invisible format characters (zero-width joiners,
// BOMs and friends) that would defeat the regex heuristics. It deliberately
// does NOT case-fold or NFKC-normalize: the classification patterns are
// case-sensitive and the reposted content must stay verbatim, so callers
// classify the sanitized form but emit the original
package sanitize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// pool of transformer chains; runes.Remove keeps internal state
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF etc
		)
	},
}

// Clean returns text with invalid UTF-8 bytes dropped and format
// characters removed
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// transform failures leave the repaired input as-is
		return s
	}
	return ns
}
