package healthsdk

import (
	"context"
	"net/http"
)

// Register creates an account and returns its first token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, Result) {
	return Call[AuthResponse](ctx, c, http.MethodPost, PathRegister, req)
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (AuthResponse, Result) {
	return Call[AuthResponse](ctx, c, http.MethodPost, PathLogin, req)
}

// Logout revokes the current token on the server. The local token is left
// alone; callers clear it themselves.
func (c *Client) Logout(ctx context.Context) Result {
	return c.Request(ctx, http.MethodPost, PathLogout, nil)
}

// Me fetches the identity behind the current token.
func (c *Client) Me(ctx context.Context) (MeResponse, Result) {
	return Call[MeResponse](ctx, c, http.MethodGet, PathMe, nil)
}

// UpdateProfile changes the caller's own profile fields.
func (c *Client) UpdateProfile(ctx context.Context, req ProfileUpdateRequest) (UserResponse, Result) {
	return Call[UserResponse](ctx, c, http.MethodPut, PathProfile, req)
}

// ChangePassword changes the caller's password. The server verifies the
// current password.
func (c *Client) ChangePassword(ctx context.Context, req PasswordChangeRequest) Result {
	return c.Request(ctx, http.MethodPut, PathPassword, req)
}
