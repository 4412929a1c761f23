package oerror

import (
	"errors"
	"fmt"
)

var (
	ErrNoStates       = errors.New("state manager: no states configured")
	ErrNilState       = errors.New("state manager: nil state in catalog")
	ErrUnknownState   = errors.New("state manager: unknown state name")
	ErrUnknownShape   = errors.New("gravity field: unknown shape")
	ErrInvalidStats   = errors.New("stats: invalid value")
	ErrEmptySpline    = errors.New("spline: needs at least two knots")
	ErrUnknownFormat  = errors.New("config: unknown file format")
	ErrNoProfiles     = errors.New("stats: no profiles")
	ErrUnknownTrigger = errors.New("level: unknown collider shape")
)

type MotionError struct {
	Err string
}

// New creates a MotionError with the formatted message.
func New(format string, args ...interface{}) *MotionError {
	return &MotionError{Err: fmt.Sprintf(format, args...)}
}

func (e *MotionError) Error() string {
	return "motion error: " + e.Err
}
