package pkgtenant

import (
	"context"
	"log/slog"
)

// Info is the authenticated principal of a request. It is passed by value and
// never modified after construction; a new principal replaces the old one.
type Info struct {
	UserID   int64
	UserName string
	RealmID  int64
	Role     string
}

// IsZero reports whether i carries no principal data at all.
func (i Info) IsZero() bool {
	return i == Info{}
}

// LogValue implements slog.LogValuer.
func (i Info) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("user_id", i.UserID),
		slog.String("user_name", i.UserName),
		slog.Int64("realm_id", i.RealmID),
		slog.String("role", i.Role),
	)
}

type tenantContextKey struct{}

// slot is what actually lives in the context. A slot with set == false marks
// an explicitly cleared holder and shadows any tenant of a parent context.
type slot struct {
	info Info
	set  bool
}

// Set returns a context whose holder contains info.
func Set(ctx context.Context, info Info) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, slot{info: info, set: true})
}

// Get returns the tenant held by ctx. The boolean is false when no tenant was
// set, which is a normal state for background work and unauthenticated calls.
func Get(ctx context.Context) (Info, bool) {
	if ctx == nil {
		return Info{}, false
	}
	s, ok := ctx.Value(tenantContextKey{}).(slot)
	if !ok || !s.set {
		return Info{}, false
	}
	return s.info, true
}

// Clear returns a context whose holder is empty.
func Clear(ctx context.Context) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, slot{})
}
