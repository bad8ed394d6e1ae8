package net

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc-123")
	if got := RequestID(ctx); got != "abc-123" {
		t.Fatalf("RequestID = %q", got)
	}
}

func TestRequestID_EmptyIsNoop(t *testing.T) {
	base := context.Background()
	ctx := WithRequestID(base, "")
	if ctx != base {
		t.Fatalf("empty id should not annotate the context")
	}
	if got := RequestID(base); got != "" {
		t.Fatalf("RequestID on bare context = %q", got)
	}
}
