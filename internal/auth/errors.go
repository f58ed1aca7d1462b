package auth

import "errors"

// ErrInvalidCredentials is returned when the password check fails.
var ErrInvalidCredentials = errors.New("invalid credentials")
