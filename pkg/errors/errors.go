package errors

import "errors"

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrNilPlayer      = errors.New("player is nil")
	ErrInvalidID      = errors.New("invalid player id")
	ErrInvalidInput   = errors.New("invalid input")
)
