package errcode

import "errors"

// Code is a stable, machine-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK          Code = "ok"
	Unsupported Code = "unsupported"

	// Construction-time (fatal: no registry is produced).
	InvalidPin        Code = "invalid_pin"
	InvalidAltFunc    Code = "invalid_alternate_function"
	CountMismatch     Code = "descriptor_count_mismatch"
	PinAliased        Code = "pin_aliased"
	InvalidPeripheral Code = "invalid_peripheral"
	InvalidIRQ        Code = "invalid_irq"
	InvalidBoard      Code = "invalid_board"

	// Lookup-time (caller contract violations).
	IndexOutOfRange Code = "index_out_of_range"
	UnknownBoard    Code = "unknown_board"

	Error Code = "error" // generic fallback
)

// E keeps a Code together with the failing operation and an optional cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is(err, SomeCode) match a wrapped *E.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// New builds an *E.
func New(c Code, op, msg string) *E { return &E{C: c, Op: op, Msg: msg} }

// Of extracts a Code from an error, defaulting to Error.
// It looks through wrapping and through aggregated errors.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	type coder interface{ Code() Code }
	var x coder
	if errors.As(err, &x) {
		return x.Code()
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return Error
}
