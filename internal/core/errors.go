package core

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionTimeout is returned by Run when no interaction arrived in time.
	ErrSessionTimeout = errors.New("session timed out")

	// ErrNotTextChannel rejects visibility changes on non-text channels.
	ErrNotTextChannel = errors.New("not a guild text channel")

	// ErrUnknownChoice is returned for a command option outside its choice set.
	ErrUnknownChoice = errors.New("unknown choice")
)

// StateViolation is raised when an input or phase combination the state
// machine rules out actually happens. It signals a defect, usually a UI
// that is out of sync with the session, and ends the session.
type StateViolation struct {
	State  string
	Input  string
	Reason string
}

func (e *StateViolation) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("state violation in %s on %q: %s", e.State, e.Input, e.Reason)
	}
	return fmt.Sprintf("state violation in %s: %s", e.State, e.Reason)
}

// violate panics with a StateViolation. Controller.Run recovers it.
func violate(state State, input, reason string) {
	panic(&StateViolation{State: state.String(), Input: input, Reason: reason})
}

// MutationError represents a failed role or channel mutation.
type MutationError struct {
	Op     string
	User   string
	Target string
	Err    error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s %s for %s: %v", e.Op, e.Target, e.User, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// TargetError is a user-visible rejection of a command target.
type TargetError struct {
	Command string
	Target  string
	Message string
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Command, e.Target, e.Message)
}
