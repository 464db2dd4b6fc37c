package wire

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every validation error returned from
// registration, skip and emit calls:
//
//	if errors.Is(err, wire.ErrInvalidArgument) { ... }
var ErrInvalidArgument = errors.New("invalid argument")

// Sentinel errors describing why an argument was rejected.
var (
	// ErrNilHandler indicates a zero Handler or one built from a nil function.
	ErrNilHandler = errors.New("handler is nil")

	// ErrEmptyPattern indicates an empty pattern or an empty pattern list.
	ErrEmptyPattern = errors.New("pattern is empty")

	// ErrLeadingWildcard indicates a pattern that starts with the wildcard marker.
	ErrLeadingWildcard = errors.New("pattern starts with wildcard")

	// ErrWildcardPlacement indicates a wildcard that is not the single trailing character.
	ErrWildcardPlacement = errors.New("wildcard must be a single trailing marker")

	// ErrWildcardChannel indicates an emitted channel name containing a wildcard.
	ErrWildcardChannel = errors.New("channel name contains wildcard")

	// ErrEmptyChannel indicates an empty channel name or an empty channel list.
	ErrEmptyChannel = errors.New("channel name is empty")

	// ErrPrioritySign indicates a Before priority above zero or an After priority below zero.
	ErrPrioritySign = errors.New("priority sign does not match registration flavor")

	// ErrNoSkipNames indicates Skip was called without handler names.
	ErrNoSkipNames = errors.New("no handler names given")

	// ErrNilContext indicates an emit was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")
)

// ArgumentError describes a rejected argument. Nothing is registered,
// skipped or emitted when one is returned.
type ArgumentError struct {
	// Op is the public operation that rejected the argument ("on", "emit", ...).
	Op string
	// Arg names the offending parameter.
	Arg string
	// Value is the rejected value, when it is a string.
	Value string
	// Err is one of the sentinel errors above.
	Err error
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s %q: %v", e.Op, e.Arg, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Arg, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalid(op, arg, value string, err error) error {
	return &ArgumentError{Op: op, Arg: arg, Value: value, Err: err}
}

// HandlerError wraps a failure reported by a handler during a chain run.
// It is delivered as the emit result, never raised.
type HandlerError struct {
	// Channel is the emitted channel name whose chain failed.
	Channel string
	// Handler is the failing handler's name.
	Handler string
	// Err is the error returned or signaled by the handler.
	Err error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("channel %s: handler %s: %v", e.Channel, e.Handler, e.Err)
}

// Unwrap returns the handler's error for errors.Is/As support.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// PanicError captures a panic raised by a handler. The chain treats it
// like any other handler failure.
type PanicError struct {
	// Value is the value passed to panic().
	Value any
	// Stack is the stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", e.Value)
}
