package agent

import (
	"errors"
	"fmt"
)

// ErrNoTreatmentFound means research produced zero usable treatments
var ErrNoTreatmentFound = errors.New("no treatment options found")

// ErrIncompleteSummary means the summarizer produced no prevention tips
var ErrIncompleteSummary = errors.New("summary has no prevention tips")

// ParseError means the gateway answered but its content could not be mapped
// into the stage's record shape. Deterministic: never retried. The
// orchestrator treats it as fatal everywhere except the instruction stage.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse model output: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrf(op, format string, args ...any) *ParseError {
	return &ParseError{Op: op, Err: fmt.Errorf(format, args...)}
}
