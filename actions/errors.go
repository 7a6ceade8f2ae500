package actions

import "errors"

// Sentinel errors for registry operations.
var (
	ErrEmptyName     = errors.New("action name cannot be empty")
	ErrAlreadyExists = errors.New("action already registered")
	ErrNotFound      = errors.New("action not found")
)
