package httpx

import (
	"net/http"
	"slices"
)

// RequireRole the caller must hold one of the provided roles. It must run
// after AuthnMiddleware.
func RequireRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(roles, RoleFromCtx(r.Context())) {
				WriteError(w, http.StatusForbidden, "forbidden", "you do not have access to this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
