package command

import (
	"errors"
	"fmt"

	"github.com/smileynet/contacts/internal/contact"
)

// ErrorKind is the closed set of failures a handler can report.
type ErrorKind int

const (
	ErrInsufficientArgs ErrorKind = iota + 1
	ErrInvalidValue
	ErrNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInsufficientArgs:
		return "insufficient_args"
	case ErrInvalidValue:
		return "invalid_value"
	case ErrNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// User-facing messages.
const (
	MsgInsufficientArgs = "Not enough arguments. Please follow the command format."
	MsgInvalidValue     = "Incorrect data. Make sure you enter the correct data types."
	MsgNotFound         = "Contact not found."
	MsgInvalidCommand   = "Invalid command."
)

// Error is a classified handler failure.
type Error struct {
	Kind ErrorKind
	Verb string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Verb, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Verb, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// classify wraps err in an *Error, mapping contact sentinels onto error kinds.
// Errors that are already classified are returned unchanged.
func classify(verb string, err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	kind := ErrInvalidValue
	if errors.Is(err, contact.ErrRecordNotFound) {
		kind = ErrNotFound
	}
	return &Error{Kind: kind, Verb: verb, Err: err}
}

// Translate turns a handler error into the message shown to the user.
func Translate(err error) string {
	var ce *Error
	if !errors.As(err, &ce) {
		ce = classify("", err)
	}
	switch ce.Kind {
	case ErrInsufficientArgs:
		return MsgInsufficientArgs
	case ErrNotFound:
		return MsgNotFound
	default:
		return MsgInvalidValue
	}
}

func insufficientArgs(verb string, want string, got int) error {
	return &Error{
		Kind: ErrInsufficientArgs,
		Verb: verb,
		Err:  fmt.Errorf("want %s arguments, got %d", want, got),
	}
}
