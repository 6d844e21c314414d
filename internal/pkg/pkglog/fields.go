package pkglog

import (
	"context"
	"maps"
	"sync"
)

const (
	// KeyCorrelationID holds the request correlation id.
	KeyCorrelationID = "X-Correlation-ID"
	// KeyStartTime holds the request start time in unix milliseconds.
	KeyStartTime = "Start-Time"
)

// Fields is a set of diagnostic key/value pairs attached to log records.
type Fields map[string]string

type fieldsContextKey struct{}

// fieldBag is the mutable store behind one scope. A scope is opened per request
// by the HTTP middleware and per worker goroutine by the pool; it is never
// shared between two scopes.
type fieldBag struct {
	mu sync.RWMutex
	m  Fields
}

func bagFrom(ctx context.Context) *fieldBag {
	if ctx == nil {
		return nil
	}
	bag, _ := ctx.Value(fieldsContextKey{}).(*fieldBag)
	return bag
}

// WithFields opens a new, empty diagnostic scope on ctx.
func WithFields(ctx context.Context) context.Context {
	return context.WithValue(ctx, fieldsContextKey{}, &fieldBag{m: Fields{}})
}

// Put associates value with key in the scope carried by ctx.
//
// When ctx has no scope yet a new one is opened and the derived context is
// returned; otherwise ctx itself is returned.
func Put(ctx context.Context, key, value string) context.Context {
	bag := bagFrom(ctx)
	if bag == nil {
		ctx = WithFields(ctx)
		bag = bagFrom(ctx)
	}

	bag.mu.Lock()
	bag.m[key] = value
	bag.mu.Unlock()

	return ctx
}

// Get reads key from the scope carried by ctx.
func Get(ctx context.Context, key string) (string, bool) {
	bag := bagFrom(ctx)
	if bag == nil {
		return "", false
	}

	bag.mu.RLock()
	defer bag.mu.RUnlock()

	v, ok := bag.m[key]
	return v, ok
}

// Snapshot returns an independent copy of the fields in ctx, or nil when the
// scope is missing or empty. Later writes to ctx never show up in the copy.
func Snapshot(ctx context.Context) Fields {
	bag := bagFrom(ctx)
	if bag == nil {
		return nil
	}

	bag.mu.RLock()
	defer bag.mu.RUnlock()

	if len(bag.m) == 0 {
		return nil
	}
	return maps.Clone(bag.m)
}

// Restore replaces the scope of ctx wholesale with a copy of fields.
func Restore(ctx context.Context, fields Fields) context.Context {
	m := maps.Clone(fields)
	if m == nil {
		m = Fields{}
	}
	return context.WithValue(ctx, fieldsContextKey{}, &fieldBag{m: m})
}

// Clear removes every entry of the scope carried by ctx.
func Clear(ctx context.Context) {
	bag := bagFrom(ctx)
	if bag == nil {
		return
	}

	bag.mu.Lock()
	clear(bag.m)
	bag.mu.Unlock()
}

// each calls fn for every field in ctx while holding the read lock.
func each(ctx context.Context, fn func(key, value string)) {
	bag := bagFrom(ctx)
	if bag == nil {
		return
	}

	bag.mu.RLock()
	defer bag.mu.RUnlock()

	for k, v := range bag.m {
		fn(k, v)
	}
}
