package toolerr

import (
	"context"
	"errors"
)

// FromError converts an arbitrary error into a structured *Error.
//
// A *Error anywhere in the chain is returned as-is, so callers that already
// classified a failure keep their code. Context deadline expiry maps to
// TIMEOUT. Everything else is wrapped as UNKNOWN_ERROR, preserving the
// original error as the cause.
//
// FromError(nil) returns nil.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var structured *Error
	if errors.As(err, &structured) {
		return structured
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(ErrCodeTimeout, "operation timed out", err)
	}
	return Wrap(ErrCodeUnknown, err.Error(), err)
}
