package pkglog

import (
	"context"
	"testing"
)

func TestCorrelationID(t *testing.T) {
	ctx := context.Background()
	if got := GetCorrelationID(ctx); got != "[invalid_chain_id]" {
		t.Fatalf("expected invalid chain id, got %q", got)
	}

	ctx = SetCorrelationID(ctx, "cid-123")
	if got := GetCorrelationID(ctx); got != "cid-123" {
		t.Fatalf("expected cid-123, got %q", got)
	}
	if got, _ := Get(ctx, KeyCorrelationID); got != "cid-123" {
		t.Fatalf("expected field %s=cid-123, got %q", KeyCorrelationID, got)
	}
}

func TestCorrelationIDSharesScope(t *testing.T) {
	ctx := WithFields(context.Background())
	same := SetCorrelationID(ctx, "cid-1")
	if same != ctx {
		t.Fatalf("expected existing scope to be written in place")
	}
	if got := GetCorrelationID(ctx); got != "cid-1" {
		t.Fatalf("expected cid-1, got %q", got)
	}
}
