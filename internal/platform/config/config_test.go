package config

import (
	"testing"
	"time"
)

func mustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	fn()
}

func TestPrefixAndKey(t *testing.T) {
	root := New()
	bot := root.Prefix("BOT_")
	if got := bot.key("TOKEN"); got != "BOT_TOKEN" {
		t.Fatalf("key() = %q, want %q", got, "BOT_TOKEN")
	}
	// nested prefix
	botLog := bot.Prefix("LOG_")
	if got := botLog.key("LEVEL"); got != "BOT_LOG_LEVEL" {
		t.Fatalf("nested key() = %q, want %q", got, "BOT_LOG_LEVEL")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("APP_")
	t.Setenv("APP_NAME", "  codefence ")
	if got := c.MustString("NAME"); got != "codefence" {
		t.Fatalf("MustString = %q, want %q", got, "codefence")
	}
	mustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMayString(t *testing.T) {
	c := New().Prefix("S_")
	if got := c.MayString("MISSING", "fallback"); got != "fallback" {
		t.Fatalf("MayString default = %q", got)
	}
	t.Setenv("S_SET", " x ")
	if got := c.MayString("SET", "fallback"); got != "x" {
		t.Fatalf("MayString = %q", got)
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("I_")
	if got := c.MayInt("MISSING", 7); got != 7 {
		t.Fatalf("MayInt default = %d", got)
	}
	t.Setenv("I_N", " 12 ")
	if got := c.MayInt("N", 7); got != 12 {
		t.Fatalf("MayInt = %d", got)
	}
	t.Setenv("I_BAD", "x")
	if got := c.MayInt("BAD", 7); got != 7 {
		t.Fatalf("MayInt invalid = %d, want default", got)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("B_")
	if got := c.MayBool("MISSING", true); !got {
		t.Fatalf("MayBool default = %v", got)
	}
	t.Setenv("B_OFF", "false")
	if got := c.MayBool("OFF", true); got {
		t.Fatalf("MayBool = %v", got)
	}
	t.Setenv("B_BAD", "notabool")
	if got := c.MayBool("BAD", true); !got {
		t.Fatalf("MayBool invalid = %v, want default", got)
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("D_")
	if got := c.MayDuration("MISSING", time.Second); got != time.Second {
		t.Fatalf("MayDuration default = %v", got)
	}
	t.Setenv("D_POLL", " 250ms ")
	if got := c.MayDuration("POLL", time.Second); got != 250*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	t.Setenv("D_BAD", "nope")
	if got := c.MayDuration("BAD", time.Second); got != time.Second {
		t.Fatalf("MayDuration invalid = %v, want default", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("C_")
	if got := c.MayCSV("MISSING", []string{"a"}); len(got) != 1 || got[0] != "a" {
		t.Fatalf("MayCSV default = %v", got)
	}
	t.Setenv("C_LIST", " one, two ,,three ")
	got := c.MayCSV("LIST", nil)
	if len(got) != 3 || got[0] != "one" || got[1] != "two" || got[2] != "three" {
		t.Fatalf("MayCSV = %v", got)
	}
	t.Setenv("C_EMPTY", " , , ")
	if got := c.MayCSV("EMPTY", []string{"d"}); len(got) != 1 || got[0] != "d" {
		t.Fatalf("MayCSV all-blank = %v, want default", got)
	}
}

func TestMustPort(t *testing.T) {
	c := New().Prefix("P_")
	t.Setenv("P_PORT", "4000")
	if got := c.MustPort("PORT"); got != ":4000" {
		t.Fatalf("MustPort = %q", got)
	}
	t.Setenv("P_HIGH", "70000")
	mustPanic(t, func() { _ = c.MustPort("HIGH") })
	t.Setenv("P_BAD", "http")
	mustPanic(t, func() { _ = c.MustPort("BAD") })
}
