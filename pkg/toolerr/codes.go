// Package toolerr defines the shared failure vocabulary for tool calls: a
// closed registry of error codes, an immutable structured error that renders
// to an MCP tool result, and a validator for error payloads received from
// other processes.
package toolerr

import "slices"

// ErrorCode classifies a tool failure. The set below is the complete
// vocabulary shared by the gateway and downstream servers; each identifier is
// stable and is never reused for a different meaning.
type ErrorCode string

const (
	// ErrCodeUnauthorized means the caller is not authenticated.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeForbidden means the caller is authenticated but lacks permission.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
	// ErrCodeNotFound means the requested server, tool, or resource does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeConflict means the request clashes with existing state.
	ErrCodeConflict ErrorCode = "CONFLICT"
	// ErrCodeValidation means the request was malformed or failed validation.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrCodeRateLimited means the caller exceeded its request budget.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeTimeout means the operation did not finish within its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeServiceUnavailable means a required downstream server cannot take requests.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeInternal means an unexpected fault inside the reporting service.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeUnknown means a failure that fits no other category.
	ErrCodeUnknown ErrorCode = "UNKNOWN_ERROR"
	// ErrCodeConfiguration means the service is misconfigured and cannot operate.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
)

// registry lists every code in declaration order. Valid and Codes derive
// from it; keep it in sync with the constants above.
var registry = []ErrorCode{
	ErrCodeUnauthorized,
	ErrCodeForbidden,
	ErrCodeNotFound,
	ErrCodeConflict,
	ErrCodeValidation,
	ErrCodeRateLimited,
	ErrCodeTimeout,
	ErrCodeServiceUnavailable,
	ErrCodeInternal,
	ErrCodeUnknown,
	ErrCodeConfiguration,
}

// Codes returns every registered error code in declaration order.
func Codes() []ErrorCode {
	return slices.Clone(registry)
}

// Valid reports whether c is a member of the registry.
func (c ErrorCode) Valid() bool {
	return slices.Contains(registry, c)
}

func (c ErrorCode) String() string {
	return string(c)
}
