package models

import (
	"errors"
	"fmt"
)

// ErrorKind is a coarse-grained classification of core failures.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindCorruptStore ErrorKind = "corrupt_store"
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrCorruptStore = errors.New("corrupt store")
)

// Error carries the failing operation, its kind and a user-facing message.
type Error struct {
	Op   string
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Msg)
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrCorruptStore:
		return e.Kind == KindCorruptStore
	}
	return false
}

// IsKind reports whether err (or anything it wraps) is an *Error of kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Message returns the user-facing message of a core error, or err.Error()
// for anything else.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return err.Error()
}

func validationError(op, msg string) error {
	return &Error{Op: op, Kind: KindValidation, Msg: msg}
}

func notFoundError(op, msg string) error {
	return &Error{Op: op, Kind: KindNotFound, Msg: msg}
}

// ContactNotFoundError reports a lookup of a name the directory does not hold.
func ContactNotFoundError(op string) error {
	return notFoundError(op, "Contact not found.")
}

// CorruptStoreError wraps cause as a corrupt_store failure for path.
func CorruptStoreError(op, path string, cause error) error {
	return &Error{Op: op, Kind: KindCorruptStore, Msg: "snapshot " + path + " is unreadable", Err: cause}
}
