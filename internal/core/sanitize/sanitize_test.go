package sanitize

import "testing"

func TestClean_StripsFormatChars(t *testing.T) {
	// zero-width space (Cf) must not survive
	in := "def\u200b foo():"
	got := Clean(in)
	if got != "def foo():" {
		t.Fatalf("Clean(%q) = %q", in, got)
	}
}

func TestClean_RepairsUTF8(t *testing.T) {
	in := "ok\xff\xfe then"
	got := Clean(in)
	if got != "ok then" {
		t.Fatalf("Clean(%q) = %q", in, got)
	}
}

func TestClean_LeavesCodeAlone(t *testing.T) {
	in := "const x = () => { console.log(x); }"
	if got := Clean(in); got != in {
		t.Fatalf("Clean changed clean input: %q", got)
	}
}

func TestClean_Empty(t *testing.T) {
	if Clean("") != "" {
		t.Fatalf("empty stays empty")
	}
}
