package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidInput  = errors.New("invalid input")
	ErrProtocol      = errors.New("protocol violation")
	ErrTokenMismatch = errors.New("token count mismatch")
	ErrUnknownTask   = errors.New("unknown task")
)
