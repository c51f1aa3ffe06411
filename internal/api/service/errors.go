package service

import "errors"

var (
	ErrMissingFields      = errors.New("missing_fields")
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrWrongPassword      = errors.New("wrong_password")
	ErrUserNotFound       = errors.New("user_not_found")
)
