package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/healthmate/internal/api/service"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
	"github.com/aussiebroadwan/healthmate/pkg/httpx"
	"github.com/aussiebroadwan/healthmate/pkg/slogx"
)

// writeServiceError maps service and validation errors onto API errors.
// Anything unrecognised is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *healthx.ValidationError
	switch {
	case errors.As(err, &ve):
		healthsdk.NewAPIError(http.StatusBadRequest, healthsdk.ErrorCodeValidation, ve.Message).WriteError(w)
	case errors.Is(err, service.ErrMissingFields):
		healthsdk.ErrMissingFields.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		healthsdk.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		healthsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrWrongPassword):
		healthsdk.ErrWrongPassword.WriteError(w)
	case errors.Is(err, service.ErrUserNotFound):
		healthsdk.ErrUserNotFound.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		healthsdk.ErrServerError.WriteError(w)
	}
}

// decode reads a JSON body and writes ErrInvalidRequest on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(r, v); err != nil {
		slogx.FromContext(r.Context()).Debug("bad request body", "err", err)
		healthsdk.ErrInvalidRequest.WriteError(w)
		return false
	}
	return true
}
