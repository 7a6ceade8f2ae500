package session

import "errors"

// Sentinel errors for store construction and operation.
var (
	ErrInvalidDriver = errors.New("invalid session store driver")
	ErrInvalidConfig = errors.New("invalid session store config")
)
