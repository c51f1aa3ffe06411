package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/api/service"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/httpx"
)

type AuthHandler struct {
	AccountService *service.AccountService
	Now            func() time.Time
}

func (h *AuthHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// HandleRegister creates an account.
//
//	@Summary		Register
//	@Description	Creates a Free account and returns a bearer token. Passwords must satisfy the shared strength policy.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		healthsdk.RegisterRequest	true	"New account"
//	@Success		201		{object}	healthsdk.AuthResponse
//	@Failure		400		{object}	healthsdk.ErrorResponse	"Missing fields, weak password or email taken"
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req healthsdk.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	u, token, err := h.AccountService.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, healthsdk.AuthResponse{Token: token, User: toUser(u, h.now())})
}

// HandleLogin exchanges credentials for a token.
//
//	@Summary		Login
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		healthsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	healthsdk.AuthResponse
//	@Failure		401		{object}	healthsdk.ErrorResponse	"Invalid credentials"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req healthsdk.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	u, token, err := h.AccountService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, healthsdk.AuthResponse{Token: token, User: toUser(u, h.now())})
}

// HandleLogout revokes the presented token.
//
//	@Summary	Logout
//	@Tags		Auth
//	@Security	BearerAuth
//	@Success	204
//	@Failure	401	{object}	healthsdk.ErrorResponse
//	@Router		/api/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.AccountService.Logout(r.Context(), httpx.TokenFromCtx(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the caller, plus every user for admins.
//
//	@Summary	Current identity
//	@Tags		Auth
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	healthsdk.MeResponse
//	@Failure	401	{object}	healthsdk.ErrorResponse
//	@Router		/api/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, all, err := h.AccountService.Me(r.Context(), httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	now := h.now()
	resp := healthsdk.MeResponse{User: toUser(u, now)}
	if all != nil {
		resp.Users = toUsers(all, now)
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleUpdateProfile edits the caller's profile.
//
//	@Summary	Update profile
//	@Tags		Profile
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		healthsdk.ProfileUpdateRequest	true	"Changed fields"
//	@Success	200		{object}	healthsdk.UserResponse
//	@Failure	400		{object}	healthsdk.ErrorResponse	"Invalid field or email taken"
//	@Router		/api/profile [put].
func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req healthsdk.ProfileUpdateRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.AccountService.UpdateProfile(r.Context(), httpx.UserIDFromCtx(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, healthsdk.UserResponse{User: toUser(u, h.now())})
}

// HandleChangePassword verifies the current password and sets a new one.
//
//	@Summary	Change password
//	@Tags		Profile
//	@Security	BearerAuth
//	@Accept		json
//	@Param		body	body	healthsdk.PasswordChangeRequest	true	"Current and new password"
//	@Success	204
//	@Failure	400	{object}	healthsdk.ErrorResponse	"Wrong current password or weak new password"
//	@Router		/api/security/password [put].
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req healthsdk.PasswordChangeRequest
	if !decode(w, r, &req) {
		return
	}

	err := h.AccountService.ChangePassword(r.Context(), httpx.UserIDFromCtx(r.Context()), req.CurrentPassword, req.NewPassword)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
