package model

import (
	"errors"
	"fmt"
)

// ErrMalformedInput marks domain construction failures; no solve is attempted
// once it is returned.
var ErrMalformedInput = errors.New("malformed input")

// ErrInfeasible marks a structurally over-constrained problem instance.
var ErrInfeasible = errors.New("problem is infeasible")

// MalformedCourseError reports a course whose data cannot expand into whole
// schedulable sessions.
type MalformedCourseError struct {
	Code   string
	Reason string
}

func (e *MalformedCourseError) Error() string {
	return fmt.Sprintf("course %s: %s", e.Code, e.Reason)
}

func (e *MalformedCourseError) Unwrap() error { return ErrMalformedInput }

// InternalConsistencyError signals that the conflict index diverged from the
// assignment. It is an engine bug, not bad input, and is raised via panic.
type InternalConsistencyError struct {
	Detail string
}

func (e *InternalConsistencyError) Error() string {
	return "internal consistency violation: " + e.Detail
}
