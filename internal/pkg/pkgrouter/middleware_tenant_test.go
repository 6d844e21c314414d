package pkgrouter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shandysiswandi/gomdc/internal/pkg/pkgtenant"
)

func serveTenant(t *testing.T, src PrincipalSource) (pkgtenant.Info, bool) {
	t.Helper()

	var info pkgtenant.Info
	var ok bool
	h := middlewareTenant(src)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info, ok = pkgtenant.Get(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "http://example.com", nil))

	return info, ok
}

func TestMiddlewareTenantStaticPrincipal(t *testing.T) {
	src := StaticPrincipal{UserID: 1, UserName: "alice", RealmID: 1, Role: "admin"}

	info, ok := serveTenant(t, src)
	if !ok {
		t.Fatalf("expected tenant installed")
	}
	if info.UserName != "alice" || info.Role != "admin" {
		t.Fatalf("unexpected tenant: %+v", info)
	}
}

func TestMiddlewareTenantAnonymous(t *testing.T) {
	if _, ok := serveTenant(t, StaticPrincipal{}); ok {
		t.Fatalf("expected no tenant for the zero principal")
	}
	if _, ok := serveTenant(t, nil); ok {
		t.Fatalf("expected no tenant without a source")
	}
}

func TestMiddlewareTenantPrincipalFunc(t *testing.T) {
	src := PrincipalFunc(func(r *http.Request) (pkgtenant.Info, bool) {
		return pkgtenant.Info{UserID: 7, UserName: r.Method}, true
	})

	info, ok := serveTenant(t, src)
	if !ok || info.UserName != http.MethodGet {
		t.Fatalf("unexpected tenant: %+v (ok=%v)", info, ok)
	}
}
