package users

import "errors"

var (
	ErrNotFound    = errors.New("user not found")
	ErrConflict    = errors.New("username already exists")
	ErrInvalidRole = errors.New("invalid role")
)
