package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Format: "json", Service: "logtest", Writer: &buf})

	Get().Info().Str("k", "v").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"message":"hello"`) {
		t.Fatalf("missing message in %q", out)
	}
	if !strings.Contains(out, `"service":"logtest"`) {
		t.Fatalf("missing service field in %q", out)
	}

	// Init is once-only; a second call must not reconfigure
	var other bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Writer: &other})
	Get().Info().Msg("again")
	if other.Len() != 0 {
		t.Fatalf("second Init reconfigured the logger")
	}
}

func TestNamed(t *testing.T) {
	a := Named("scanner")
	if a == nil {
		t.Fatalf("Named returned nil")
	}
	if Named("") != Get() {
		t.Fatalf("empty component should return the root logger")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"WARNING": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		" info ":  zerolog.InfoLevel,
		"bogus":   zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
