package app

import "errors"

// Sentinel kinds for service errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotStarted         = errors.New("service not started")
)
