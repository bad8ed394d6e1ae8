package codedetect

import (
	"testing"

	"codefence/internal/core/rulepack"
)

func mustDetector(t *testing.T) *Detector {
	t.Helper()
	p, err := rulepack.Load()
	if err != nil {
		t.Fatalf("load pack: %v", err)
	}
	return New(p)
}

func TestIsLikelyCode_Empty(t *testing.T) {
	d := mustDetector(t)
	if d.IsLikelyCode("") {
		t.Fatalf("empty text is never code")
	}
}

func TestIsLikelyCode_PlainChat(t *testing.T) {
	d := mustDetector(t)
	if d.IsLikelyCode("hello\nhow are you") {
		t.Fatalf("plain chat flagged as code")
	}
}

func TestIsLikelyCode_Indicators(t *testing.T) {
	d := mustDetector(t)
	for _, text := range []string{
		"def handle(req):",
		"const total = items.length",
		"if (x > 0) return x",
		"public int getCount()",
		"from collections import deque",
	} {
		v := d.Explain(text)
		if !v.Likely || v.Reason != ReasonIndicator {
			t.Fatalf("expected indicator hit for %q, got %+v", text, v)
		}
	}
}

func TestIsLikelyCode_AlreadyFormattedSuppressed(t *testing.T) {
	d := mustDetector(t)
	// an existing fence wins even when the rest looks like loose code
	text := "def f():\n    pass\n```python\nx = 1\n```"
	v := d.Explain(text)
	if v.Likely || v.Reason != ReasonFormatted {
		t.Fatalf("formatted text must be suppressed, got %+v", v)
	}
	if d.IsLikelyCode("see `x.y` for details") {
		t.Fatalf("inline span must suppress detection")
	}
}

func TestDensity_RequiresMoreThanTwoLines(t *testing.T) {
	d := mustDetector(t)

	// punctuation on two of three lines: below threshold
	two := "alpha;\nbeta;\ngamma"
	if v := d.Explain(two); v.Likely {
		t.Fatalf("two qualifying lines should not trip density, got %+v", v)
	}

	// punctuation on all three lines: above threshold
	three := "alpha;\nbeta;\ngamma."
	v := d.Explain(three)
	if !v.Likely || v.Reason != ReasonDensity || v.CodeLines != 3 {
		t.Fatalf("three qualifying lines should trip density, got %+v", v)
	}
}

func TestDensity_NeverFiresOnSingleLine(t *testing.T) {
	d := mustDetector(t)
	// plenty of punctuation but no newline: only indicators may flag it
	if d.IsLikelyCode("a;b;c;d;e;f;g") {
		t.Fatalf("single-line text must not trip the density fallback")
	}
}

func TestExplain_Idempotent(t *testing.T) {
	d := mustDetector(t)
	text := "let x = 1\nlet y = 2\nconsole.log(x+y);"
	a, b := d.Explain(text), d.Explain(text)
	if a != b {
		t.Fatalf("verdicts differ: %+v vs %+v", a, b)
	}
}
