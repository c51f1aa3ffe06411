package healthsdk

import (
	"context"
	"net/http"
)

// ListUsers returns every account. Admin only.
func (c *Client) ListUsers(ctx context.Context) (UsersResponse, Result) {
	return Call[UsersResponse](ctx, c, http.MethodGet, PathAdminUsers, nil)
}

// UpdateUser changes another account. Admin only.
func (c *Client) UpdateUser(ctx context.Context, id string, req AdminUserUpdateRequest) (UserResponse, Result) {
	return Call[UserResponse](ctx, c, http.MethodPut, AdminUserPath(id), req)
}

// DeleteUser removes an account and all of its logs. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id string) Result {
	return c.Request(ctx, http.MethodDelete, AdminUserPath(id), nil)
}
