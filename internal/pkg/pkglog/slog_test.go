package pkglog

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shandysiswandi/gomdc/internal/pkg/pkgtenant"
)

type captureHandler struct {
	attrs map[string]slog.Value
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	if h.attrs == nil {
		h.attrs = make(map[string]slog.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.attrs[a.Key] = a.Value
		return true
	})
	return nil
}

func (h *captureHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *captureHandler) WithGroup(_ string) slog.Handler {
	return h
}

func TestContextHandlerAddsServiceAndCID(t *testing.T) {
	capture := &captureHandler{}
	handler := &contextHandler{Handler: capture}

	ctx := SetCorrelationID(context.Background(), "cid-abc")
	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)

	if err := handler.Handle(ctx, rec); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if got := capture.attrs["service"].String(); got != "gomdc" {
		t.Fatalf("expected service=gomdc, got %q", got)
	}
	if got := capture.attrs["_cID"].String(); got != "cid-abc" {
		t.Fatalf("expected _cID=cid-abc, got %q", got)
	}
}

func TestContextHandlerSkipsInvalidCID(t *testing.T) {
	capture := &captureHandler{}
	handler := &contextHandler{Handler: capture}

	ctx := context.Background()
	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)

	if err := handler.Handle(ctx, rec); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if _, ok := capture.attrs["_cID"]; ok {
		t.Fatalf("did not expect _cID to be set")
	}
	if got := capture.attrs["service"].String(); got != "gomdc" {
		t.Fatalf("expected service=gomdc, got %q", got)
	}
}

func TestContextHandlerAddsFieldsAndTenant(t *testing.T) {
	capture := &captureHandler{}
	handler := NewContextHandler(capture)

	ctx := Put(context.Background(), KeyStartTime, "1700000000000")
	ctx = Put(ctx, "job", "welcome-email")
	ctx = pkgtenant.Set(ctx, pkgtenant.Info{UserID: 1, UserName: "alice", RealmID: 1, Role: "admin"})
	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)

	if err := handler.Handle(ctx, rec); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if got := capture.attrs["start_time"].String(); got != "1700000000000" {
		t.Fatalf("expected start_time, got %q", got)
	}
	if got := capture.attrs["job"].String(); got != "welcome-email" {
		t.Fatalf("expected job field, got %q", got)
	}
	tenant, ok := capture.attrs["tenant"].Any().(pkgtenant.Info)
	if !ok || tenant.UserName != "alice" {
		t.Fatalf("expected tenant alice, got %v", capture.attrs["tenant"])
	}
}

func TestContextHandlerWithoutTenant(t *testing.T) {
	capture := &captureHandler{}
	handler := NewContextHandler(capture)

	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)
	if err := handler.Handle(context.Background(), rec); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if _, ok := capture.attrs["tenant"]; ok {
		t.Fatalf("did not expect tenant attr")
	}
}
