package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/healthmate/pkg/slogx"
)

// ErrUnknownToken is returned by an Authenticator for tokens it never issued
// (or that were revoked, or lost in a restart).
var ErrUnknownToken = errors.New("httpx: unknown token")

// Principal is who a bearer token belongs to.
type Principal struct {
	UserID string
	Role   string
}

// Authenticator resolves an opaque bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Principal, error)
}

// AuthnMiddleware rejects requests without a valid bearer token and stores
// the resolved principal in the request context.
func AuthnMiddleware(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			p, err := a.Authenticate(ctx, raw)
			if err != nil {
				if !errors.Is(err, ErrUnknownToken) {
					log.Warn("token lookup failed", "err", err)
				}
				writeBearerError(w, "invalid or expired session")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, p.UserID)
			ctx = context.WithValue(ctx, CtxKeyRole, p.Role)
			ctx = context.WithValue(ctx, CtxKeyToken, raw)
			ctx = slogx.WithAttrs(ctx, "user_id", p.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an Authorization: Bearer header.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	return raw, raw != ""
}

// RFC 6750 style challenge plus the JSON error body.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "unauthorized", desc)
}
