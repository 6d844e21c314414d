package pkgrouter

import (
	"net/http"

	"github.com/shandysiswandi/gomdc/internal/pkg/pkgtenant"
)

// PrincipalSource resolves the caller of a request.
type PrincipalSource interface {
	Principal(r *http.Request) (pkgtenant.Info, bool)
}

// PrincipalFunc adapts a function to PrincipalSource.
type PrincipalFunc func(r *http.Request) (pkgtenant.Info, bool)

// Principal implements PrincipalSource.
func (f PrincipalFunc) Principal(r *http.Request) (pkgtenant.Info, bool) {
	return f(r)
}

// StaticPrincipal resolves every request to the same principal. The zero value
// resolves to nobody.
type StaticPrincipal pkgtenant.Info

// Principal implements PrincipalSource.
func (s StaticPrincipal) Principal(*http.Request) (pkgtenant.Info, bool) {
	info := pkgtenant.Info(s)
	return info, !info.IsZero()
}

// middlewareTenant installs the resolved principal as the request's tenant.
// Requests without a principal continue anonymously.
func middlewareTenant(src PrincipalSource) Middleware {
	return func(next http.Handler) http.Handler {
		if src == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if info, ok := src.Principal(r); ok {
				r = r.WithContext(pkgtenant.Set(r.Context(), info))
			}
			next.ServeHTTP(w, r)
		})
	}
}
