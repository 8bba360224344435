package rentview

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a collaborator failure
type ErrorKind string

const (
	KindNetwork    ErrorKind = "network"
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
)

// Sentinels matched with errors.Is against an *ActionError
var (
	ErrNetwork    = errors.New("network error")
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

// Refusals raised by the engine itself, before any collaborator is called
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrForbidden         = errors.New("role not allowed to perform this action")
	ErrInFlight          = errors.New("action already in progress")
	ErrNoSelection       = errors.New("no rent record selected")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrOverlayBlocked    = errors.New("a modal is open")
	ErrUnknownRow        = errors.New("row not found in current view")
	ErrScreenClosed      = errors.New("screen closed")
)

// ActionError is a classified collaborator failure
type ActionError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *ActionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the kind sentinels
func (e *ActionError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrNotFound:
		return e.Kind == KindNotFound
	}
	return false
}

// NewNetworkError wraps a transient failure
func NewNetworkError(op string, err error) error {
	return &ActionError{Kind: KindNetwork, Op: op, Err: err}
}

// NewValidationError wraps a failure the user must correct
func NewValidationError(op string, err error) error {
	return &ActionError{Kind: KindValidation, Op: op, Err: err}
}

// NewNotFoundError wraps a failure for a record that vanished server side
func NewNotFoundError(op string, err error) error {
	return &ActionError{Kind: KindNotFound, Op: op, Err: err}
}

// Classify returns the kind of a collaborator error. Unclassified errors,
// including context cancellation, count as network errors.
func Classify(err error) ErrorKind {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindNetwork
}

// IsRefusal reports whether err is an engine refusal rather than a collaborator failure
func IsRefusal(err error) bool {
	for _, target := range []error{
		ErrInvalidInput, ErrForbidden, ErrInFlight, ErrNoSelection,
		ErrInvalidTransition, ErrOverlayBlocked, ErrUnknownRow, ErrScreenClosed,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
