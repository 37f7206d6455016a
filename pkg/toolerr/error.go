package toolerr

import (
	"fmt"
	"log/slog"
	"maps"
)

// Error is a single tool failure: a registry code, a human-readable message,
// and optional machine-readable details. Values are immutable after
// construction. The error owns its details map exclusively, so callers get
// copies in and copies out. Construct one at the point a failure is detected,
// pass it up the stack, and render it exactly once at the response boundary.
type Error struct {
	code    ErrorCode
	message string
	details map[string]any
	cause   error
}

// New returns an Error with the given code and message. Construction never
// fails; the code is constrained to the registry by the type system.
func New(code ErrorCode, message string) *Error {
	return &Error{code: code, message: message}
}

// Newf is New with fmt.Sprintf formatting of the message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error that retains err as its cause, so errors.Is and
// errors.As keep working across the classification boundary.
func Wrap(code ErrorCode, message string, err error) *Error {
	return &Error{code: code, message: message, cause: err}
}

// WithDetails returns a copy of the error carrying the given details. The
// map is cloned; mutating the argument afterwards does not affect the error.
// Details should hold only JSON-serializable values (no cycles, channels, or
// functions); see ToolResult for how unserializable details degrade.
func (e *Error) WithDetails(details map[string]any) *Error {
	clone := *e
	if len(details) > 0 {
		clone.details = maps.Clone(details)
	} else {
		clone.details = nil
	}
	return &clone
}

// Code returns the registry code the failure was classified under.
func (e *Error) Code() ErrorCode {
	return e.code
}

// Message returns the human-readable description of the failure.
func (e *Error) Message() string {
	return e.message
}

// Details returns a copy of the error's details, or nil when it carries none.
func (e *Error) Details() map[string]any {
	if len(e.details) == 0 {
		return nil
	}
	return maps.Clone(e.details)
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// Unwrap exposes the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// LogValue logs the error as a structured group instead of a flat string.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("code", string(e.code)),
		slog.String("message", e.message),
	}
	if len(e.details) > 0 {
		attrs = append(attrs, slog.Any("details", e.Details()))
	}
	return slog.GroupValue(attrs...)
}
