package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidSessionID is returned when an empty or malformed session ID is used.
var ErrInvalidSessionID = errors.New("invalid session id")

// ErrUnknownMode is returned by hosts when a mode name does not match any declared Mode.
var ErrUnknownMode = errors.New("unknown conversion mode")
