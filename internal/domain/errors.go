package domain

import "errors"

var (
	ErrPlayerNotFound         = errors.New("player not found")
	ErrUsernameNotFound       = errors.New("username not found")
	ErrTemporarilyUnavailable = errors.New("temporarily unavailable")
	ErrInvalidPlatform        = errors.New("invalid platform")
)
