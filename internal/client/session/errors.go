package session

import (
	"errors"

	"github.com/aussiebroadwan/healthmate/pkg/healthx"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already in use")
	ErrWeakPassword       = healthx.ErrWeakPassword
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrNotAuthenticated   = errors.New("not signed in")
	ErrForbidden          = errors.New("admin role required")
	ErrUserNotFound       = errors.New("user not found")
)
