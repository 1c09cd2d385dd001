package user

import "errors"

var (
	// ErrUserNotFound means a session exists but no user record matches it.
	ErrUserNotFound = errors.New("user not found")

	ErrExternalIDRequired = errors.New("external id required")
)
