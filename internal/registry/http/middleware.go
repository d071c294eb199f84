package http

import (
	"net/http"

	"github.com/chalkboard-sys/registry/internal/registry/policy"
	"github.com/chalkboard-sys/registry/internal/registry/service"
	"github.com/chalkboard-sys/registry/pkg/httpx"
)

// AccessHeader is the request header carrying the raw access token. No
// "Bearer" prefix: the header value is the literal token string.
const AccessHeader = "Access"

// Protect authenticates the request and enforces the policy table entry for
// the given resource. The required roles come from the table keyed by the
// resource name and the request method; a missing entry means any
// authenticated caller passes.
func Protect(authz *service.AuthorizeService, table policy.Table, resource string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			roles := table.RolesFor(resource, r.Method)
			id, err := authz.Authorize(ctx, r.Header.Get(AccessHeader), roles)
			if err != nil {
				writeServiceError(ctx, w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(ctx, id)))
		})
	}
}
