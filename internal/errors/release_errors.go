package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for precondition failures. These occur before any
// mutation of local or remote state, so no recovery is needed.
var (
	ErrMissingTool    = errors.New("required tool not found")
	ErrRuntimeVersion = errors.New("runtime version too old")
	ErrDirtyWorkTree  = errors.New("working tree has uncommitted changes")
	ErrCleanDeclined  = errors.New("bailing out, working tree left untouched")
	ErrVersionTooLong = errors.New("version string too long, release from a tagged commit")
)

// StepError represents a release step failure together with the recovery
// phase that was active when it happened. PostPush indicates remote state
// may already be partially mutated.
type StepError struct {
	Step     string // Step that failed
	PostPush bool   // Whether the push to origin had already begun
	Err      error  // The underlying error
}

func (e *StepError) Error() string {
	if e.PostPush {
		return fmt.Sprintf("%s failed after push to origin: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// NewStepError creates a new StepError
func NewStepError(step string, postPush bool, err error) *StepError {
	return &StepError{
		Step:     step,
		PostPush: postPush,
		Err:      err,
	}
}

// IsStepError checks if an error is a StepError
func IsStepError(err error) bool {
	var se *StepError
	return errors.As(err, &se)
}

// IsPostPush reports whether err is a step failure that happened once the
// push to origin had begun.
func IsPostPush(err error) bool {
	var se *StepError
	if errors.As(err, &se) {
		return se.PostPush
	}
	return false
}
