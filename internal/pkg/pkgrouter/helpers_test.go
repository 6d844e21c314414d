package pkgrouter

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shandysiswandi/gomdc/internal/pkg/pkglog"
)

func TestNormalizeCID(t *testing.T) {
	if got := normalizeCID("  abc  "); got != "abc" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := normalizeCID("\n"); got != "" {
		t.Fatalf("expected empty for newline, got %q", got)
	}
	if got := normalizeCID("abc\r\nSet-Cookie: x"); got != "" {
		t.Fatalf("expected empty for header injection, got %q", got)
	}
	long := strings.Repeat("a", 200)
	if got := normalizeCID(long); len(got) != 128 {
		t.Fatalf("expected length 128, got %d", len(got))
	}
}

func TestNormalizeCIDKeepsWholeCharacters(t *testing.T) {
	// 127 ASCII bytes followed by a 3-byte rune straddling the 128-byte limit.
	v := strings.Repeat("a", 127) + "€" + "tail"
	got := normalizeCID(v)
	if !utf8.ValidString(got) {
		t.Fatalf("expected valid UTF-8 after truncation, got %q", got)
	}
	if got != strings.Repeat("a", 127) {
		t.Fatalf("expected cut before the split rune, got %q (len %d)", got, len(got))
	}

	if got := normalizeCID("ok-\xff-id"); got != "" {
		t.Fatalf("expected invalid UTF-8 to be rejected, got %q", got)
	}

	rs := strings.Repeat("é", 100) // 200 bytes of 2-byte runes
	if got := normalizeCID(rs); len(got) != 128 || !utf8.ValidString(got) {
		t.Fatalf("expected 128 bytes of whole runes, got len %d", len(got))
	}
}

func TestMaskHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "secret")
	headers.Set("X-Trace", "ok")

	masked := maskHeaders(headers)
	if got := masked.Get("Authorization"); got != "***" {
		t.Fatalf("expected masked authorization, got %q", got)
	}
	if got := masked.Get("X-Trace"); got != "ok" {
		t.Fatalf("expected X-Trace to stay, got %q", got)
	}
	if got := headers.Get("Authorization"); got != "secret" {
		t.Fatalf("expected original headers unchanged, got %q", got)
	}
}

func TestRequestStart(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	if _, ok := requestStart(req); ok {
		t.Fatalf("expected no start time without a scope")
	}

	ctx := pkglog.Put(req.Context(), pkglog.KeyStartTime, "1700000000123")
	got, ok := requestStart(req.WithContext(ctx))
	if !ok {
		t.Fatalf("expected start time")
	}
	if !got.Equal(time.UnixMilli(1700000000123)) {
		t.Fatalf("unexpected start time: %v", got)
	}

	pkglog.Put(ctx, pkglog.KeyStartTime, "not-a-number")
	if _, ok := requestStart(req.WithContext(ctx)); ok {
		t.Fatalf("expected malformed start time to be ignored")
	}
}

func TestInternalFrames(t *testing.T) {
	stack := []byte("goroutine 1 [running]:\n" +
		"runtime/debug.Stack()\n" +
		"\t/usr/local/go/src/runtime/debug/stack.go:26 +0x5e\n" +
		"github.com/shandysiswandi/gomdc/internal/user/usecase.(*Usecase).Create(...)\n" +
		"\t/src/gomdc/internal/user/usecase/usecase.go:42 +0x1a\n")

	got := internalFrames(stack)
	if len(got) != 1 || got[0] != "internal/user/usecase/usecase.go:42" {
		t.Fatalf("unexpected frames: %#v", got)
	}
}
