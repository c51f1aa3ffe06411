package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/api/service"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/httpx"
	"github.com/aussiebroadwan/healthmate/pkg/slogx"
)

type AdminHandler struct {
	AdminService *service.AdminService
}

// HandleList godoc
//
//	@Summary	List users
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	healthsdk.UsersResponse
//	@Failure	403	{object}	healthsdk.ErrorResponse	"Caller is not an admin"
//	@Router		/api/admin/users [get].
func (h *AdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.AdminService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, healthsdk.UsersResponse{Users: toUsers(users, time.Now())})
}

// HandleUpdate godoc
//
//	@Summary	Update a user
//	@Tags		Admin
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"User ID"
//	@Param		body	body		healthsdk.AdminUserUpdateRequest	true	"Changed fields"
//	@Success	200		{object}	healthsdk.UserResponse
//	@Failure	400		{object}	healthsdk.ErrorResponse	"Invalid field or email taken"
//	@Failure	404		{object}	healthsdk.ErrorResponse
//	@Router		/api/admin/users/{id} [put].
func (h *AdminHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req healthsdk.AdminUserUpdateRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.AdminService.UpdateUser(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("user updated by admin", "target_id", u.ID)
	httpx.WriteJSON(w, http.StatusOK, healthsdk.UserResponse{User: toUser(u, time.Now())})
}

// HandleDelete godoc
//
//	@Summary		Delete a user
//	@Description	Removes the user with all metric logs, water logs and goal, and revokes their tokens.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Param			id	path	string	true	"User ID"
//	@Success		204
//	@Failure		404	{object}	healthsdk.ErrorResponse
//	@Router			/api/admin/users/{id} [delete].
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.AdminService.DeleteUser(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
