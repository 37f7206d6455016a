package toolerr

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// PayloadSchema returns the JSON Schema that a structured error payload must
// satisfy. It is the declarative counterpart of ParsePayload: an object whose
// "code" is one of the registered codes, whose "message" is a string, and
// whose optional "details" is an object.
//
// The schema is built fresh on every call so callers may modify the result.
func PayloadSchema() *jsonschema.Schema {
	codes := Codes()
	enum := make([]any, len(codes))
	for i, c := range codes {
		enum[i] = string(c)
	}
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"code", "message"},
		Properties: map[string]*jsonschema.Schema{
			"code": {
				Type:        "string",
				Description: "Registered error code identifying the failure class.",
				Enum:        enum,
			},
			"message": {
				Type:        "string",
				Description: "Human-readable description of the failure.",
			},
			"details": {
				Type:        "object",
				Description: "Optional machine-readable context for the failure.",
			},
		},
	}
}
