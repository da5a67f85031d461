// Package errs holds the error vocabulary shared by the domain, the
// application services and the REST layer.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("conflict")
	ErrDeadlinePassed = errors.New("deadline passed")
)

// Kind is a coarse-grained categorization for errors.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindDeadlinePassed Kind = "deadline_passed"
	KindInternal       Kind = "internal"
)

var kindSentinels = map[Kind]error{
	KindNotFound:       ErrNotFound,
	KindValidation:     ErrValidation,
	KindConflict:       ErrConflict,
	KindDeadlinePassed: ErrDeadlinePassed,
}

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind Kind
	ID   string // Optional: id of the entity the operation was about
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.ID != "" {
		base += fmt.Sprintf(" (id=%s)", e.ID)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match an OpError against the sentinel of its kind.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// NotFound builds an OpError of KindNotFound.
func NotFound(op, id string) error {
	return &OpError{Op: op, Kind: KindNotFound, ID: id}
}

// Validation builds an OpError of KindValidation.
func Validation(op string, err error) error {
	return &OpError{Op: op, Kind: KindValidation, Err: err}
}

// Conflict builds an OpError of KindConflict with a formatted reason.
func Conflict(op, id, format string, args ...interface{}) error {
	return &OpError{Op: op, Kind: KindConflict, ID: id, Err: fmt.Errorf(format, args...)}
}

// DeadlinePassed builds an OpError of KindDeadlinePassed with a formatted reason.
func DeadlinePassed(op, id, format string, args ...interface{}) error {
	return &OpError{Op: op, Kind: KindDeadlinePassed, ID: id, Err: fmt.Errorf(format, args...)}
}

// KindOf classifies err. Errors that carry no kind are internal.
func KindOf(err error) Kind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindInternal
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
