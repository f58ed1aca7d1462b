package documents

import "errors"

var (
	ErrNotFound     = errors.New("document not found")
	ErrConflict     = errors.New("document with same title already exists")
	ErrInvalidInput = errors.New("invalid input")
)
