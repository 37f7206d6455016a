package toolerr

import "net/http"

// HTTPStatus maps the code to the HTTP status an error response is served
// with. TIMEOUT maps to 504 rather than 408 because the gateway fronts
// downstream servers: the deadline that expired belongs to the upstream hop,
// not to the caller's request parsing.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		// INTERNAL_ERROR, UNKNOWN_ERROR, CONFIGURATION_ERROR, and anything
		// outside the registry.
		return http.StatusInternalServerError
	}
}
