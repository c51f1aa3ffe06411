package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyRole   ctxKey = "role"
	CtxKeyToken  ctxKey = "token"
)

// UserIDFromCtx returns the authenticated user id, or "" for anonymous requests.
func UserIDFromCtx(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyUserID).(string)
	return v
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyRole).(string)
	return v
}

// TokenFromCtx returns the raw bearer token the request was authenticated with.
func TokenFromCtx(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyToken).(string)
	return v
}
