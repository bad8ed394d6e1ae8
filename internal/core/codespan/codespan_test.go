package codespan

import "testing"

func TestDetect_Fence(t *testing.T) {
	text := "```go\nfmt.Println(1)\n```"
	spans := Detect(text)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d: %+v", len(spans), spans)
	}
	s := spans[0]
	if s.Type != TypeFence {
		t.Fatalf("expected fence, got %s", s.Type)
	}
	if got := text[s.Start:s.End]; got != "fmt.Println(1)" {
		t.Fatalf("unexpected fence content %q", got)
	}
}

func TestDetect_FenceWithoutTag(t *testing.T) {
	if !HasFormatted("```\nx = 1\n```") {
		t.Fatalf("untagged fence should count as formatted")
	}
}

func TestDetect_Inline(t *testing.T) {
	spans := Detect("run `go vet` first")
	if len(spans) != 1 || spans[0].Type != TypeInline {
		t.Fatalf("expected one inline span, got %+v", spans)
	}
}

func TestDetect_LoneBacktick(t *testing.T) {
	if HasFormatted("don't `forget") {
		t.Fatalf("a lone backtick is not a span")
	}
}

func TestDetect_EmptyInlinePair(t *testing.T) {
	// two adjacent backticks are an (empty) inline span and still suppress
	if !HasFormatted("weird `` thing") {
		t.Fatalf("empty inline pair should count as formatted")
	}
}

func TestDetect_MalformedFenceFallsBackToInline(t *testing.T) {
	// opener without a closing fence: the backticks still pair up inline
	if !HasFormatted("```go\nunterminated") {
		t.Fatalf("unterminated fence should still register as formatted")
	}
}

func TestDetect_FenceBackticksNotReusedInline(t *testing.T) {
	spans := Detect("```\ncode\n```")
	for _, s := range spans {
		if s.Type == TypeInline {
			t.Fatalf("fence delimiters must not pair as inline spans: %+v", spans)
		}
	}
}

func TestDetect_Empty(t *testing.T) {
	if Detect("") != nil {
		t.Fatalf("empty input has no spans")
	}
}
