package toolerr

import (
	"fmt"
	"maps"
	"strings"
)

// Payload is the wire form of an Error: the object a process serializes when
// it reports a tool failure across a boundary. ParsePayload is the only
// trusted path from an untrusted value to a Payload.
type Payload struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Payload returns the machine-readable form of the error. The details map is
// a copy; the error keeps exclusive ownership of its own.
func (e *Error) Payload() Payload {
	p := Payload{Code: e.code, Message: e.message}
	if len(e.details) > 0 {
		p.Details = maps.Clone(e.details)
	}
	return p
}

// FieldFailure names one payload field that failed validation and why.
type FieldFailure struct {
	Field  string
	Reason string
}

// ShapeError reports every field of a candidate payload that failed
// validation. A malformed payload is rejected whole, never partially
// accepted.
type ShapeError struct {
	Failures []FieldFailure
}

func (e *ShapeError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		if f.Field == "" {
			parts = append(parts, f.Reason)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return "invalid error payload: " + strings.Join(parts, "; ")
}

// ParsePayload validates an untrusted value against the error payload shape
// and returns the typed payload on success. The checks, in order:
//
//  1. the value is a JSON object, not null, not a primitive, not an array;
//  2. "code" exists, is a string, and is a registry member; unknown code
//     strings are rejected, never coerced;
//  3. "message" exists and is a string;
//  4. "details", when present, is a string-keyed object.
//
// On failure the returned error is a *ShapeError naming each offending field
// and the reason. The returned payload owns a copy of the details map.
func ParsePayload(v any) (*Payload, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &ShapeError{Failures: []FieldFailure{
			{Field: "", Reason: fmt.Sprintf("payload must be a JSON object, got %T", v)},
		}}
	}

	var failures []FieldFailure
	var code ErrorCode
	var message string

	if raw, present := obj["code"]; !present {
		failures = append(failures, FieldFailure{Field: "code", Reason: "required field is missing"})
	} else if s, isString := raw.(string); !isString {
		failures = append(failures, FieldFailure{Field: "code", Reason: fmt.Sprintf("must be a string, got %T", raw)})
	} else if !ErrorCode(s).Valid() {
		failures = append(failures, FieldFailure{Field: "code", Reason: fmt.Sprintf("%q is not a registered error code", s)})
	} else {
		code = ErrorCode(s)
	}

	if raw, present := obj["message"]; !present {
		failures = append(failures, FieldFailure{Field: "message", Reason: "required field is missing"})
	} else if s, isString := raw.(string); !isString {
		failures = append(failures, FieldFailure{Field: "message", Reason: fmt.Sprintf("must be a string, got %T", raw)})
	} else {
		message = s
	}

	var details map[string]any
	if raw, present := obj["details"]; present {
		d, isObject := raw.(map[string]any)
		if !isObject {
			failures = append(failures, FieldFailure{Field: "details", Reason: fmt.Sprintf("must be an object, got %T", raw)})
		} else {
			details = maps.Clone(d)
		}
	}

	if len(failures) > 0 {
		return nil, &ShapeError{Failures: failures}
	}
	return &Payload{Code: code, Message: message, Details: details}, nil
}
