package match

import (
	"errors"
	"fmt"
)

// Sentinel errors returned before any rendering work starts.
var (
	ErrInvalidPayload   = errors.New("malformed match data")
	ErrPlayerNotInMatch = errors.New("player not in match")
)

// ValidationError names the offending field of a rejected participant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidPayload, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidPayload }
