package pkgrouter

import (
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shandysiswandi/gomdc/internal/pkg/pkglog"
)

// Generator generates a unique string (used for correlation/request IDs).
type Generator interface {
	Generate() string
}

const (
	// HeaderCorrelationID is the canonical header used to track requests end-to-end.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is an accepted alternative header name used by some proxies.
	HeaderRequestID = "X-Request-ID"
)

func normalizeCID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.ContainsAny(v, "\r\n") {
		return ""
	}
	if !utf8.ValidString(v) {
		return ""
	}
	const maxLen = 128
	if len(v) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(v[cut]) {
			cut--
		}
		v = v[:cut]
	}
	return v
}

// middlewareCorrelationID opens the request's diagnostic scope. The scope holds
// the correlation id and the request start time, and is cleared once the rest
// of the chain returns.
func middlewareCorrelationID(uid Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := pkglog.WithFields(r.Context())
			defer pkglog.Clear(ctx)

			pkglog.Put(ctx, pkglog.KeyStartTime, strconv.FormatInt(time.Now().UnixMilli(), 10))

			cid := normalizeCID(r.Header.Get(HeaderCorrelationID))
			if cid == "" {
				cid = normalizeCID(r.Header.Get(HeaderRequestID))
			}
			if cid == "" && uid != nil {
				cid = uid.Generate()
			}

			if cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				pkglog.SetCorrelationID(ctx, cid)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requestStart returns the start time recorded by middlewareCorrelationID, or
// false when the request has none.
func requestStart(r *http.Request) (time.Time, bool) {
	v, ok := pkglog.Get(r.Context(), pkglog.KeyStartTime)
	if !ok {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
