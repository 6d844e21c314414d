package pkglog

import (
	"context"
	"testing"
)

func TestGetWithoutScope(t *testing.T) {
	if v, ok := Get(context.Background(), KeyCorrelationID); ok {
		t.Fatalf("expected absent, got %q", v)
	}
	if snap := Snapshot(context.Background()); snap != nil {
		t.Fatalf("expected nil snapshot, got %v", snap)
	}
	Clear(context.Background())
}

func TestPutOpensScope(t *testing.T) {
	base := context.Background()
	ctx := Put(base, "k", "v")
	if ctx == base {
		t.Fatalf("expected a derived context")
	}
	if v, ok := Get(ctx, "k"); !ok || v != "v" {
		t.Fatalf("expected k=v, got %q (ok=%v)", v, ok)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	ctx := Put(context.Background(), KeyCorrelationID, "1700000000-abc")
	snap := Snapshot(ctx)

	Put(ctx, KeyCorrelationID, "changed")
	Clear(ctx)

	if snap[KeyCorrelationID] != "1700000000-abc" {
		t.Fatalf("snapshot changed after source mutation: %v", snap)
	}
	if _, ok := Get(ctx, KeyCorrelationID); ok {
		t.Fatalf("expected source to be cleared")
	}
}

func TestSnapshotOfEmptyScopeIsNil(t *testing.T) {
	ctx := WithFields(context.Background())
	if snap := Snapshot(ctx); snap != nil {
		t.Fatalf("expected nil snapshot for empty scope, got %v", snap)
	}
}

func TestRestoreReplacesWholesale(t *testing.T) {
	ctx := Put(context.Background(), "old", "1")
	src := Fields{KeyCorrelationID: "cid-9"}

	restored := Restore(ctx, src)
	src[KeyCorrelationID] = "mutated"

	if _, ok := Get(restored, "old"); ok {
		t.Fatalf("expected old field to be replaced")
	}
	if v, _ := Get(restored, KeyCorrelationID); v != "cid-9" {
		t.Fatalf("expected restored copy to be isolated, got %q", v)
	}
	if v, _ := Get(ctx, "old"); v != "1" {
		t.Fatalf("expected parent scope untouched, got %q", v)
	}
}

func TestRestoreNil(t *testing.T) {
	ctx := Restore(context.Background(), nil)
	Put(ctx, "k", "v")
	if v, _ := Get(ctx, "k"); v != "v" {
		t.Fatalf("expected writable scope after nil restore, got %q", v)
	}
}

func TestClearOnlyTouchesOwnScope(t *testing.T) {
	parent := Put(context.Background(), "k", "parent")
	child := Restore(parent, Snapshot(parent))

	Clear(child)

	if _, ok := Get(child, "k"); ok {
		t.Fatalf("expected child scope cleared")
	}
	if v, _ := Get(parent, "k"); v != "parent" {
		t.Fatalf("expected parent scope untouched, got %q", v)
	}
}
