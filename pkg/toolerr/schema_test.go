package toolerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPayloadSchema tests that the published schema declares the same four
// constraints ParsePayload enforces by hand.
func TestPayloadSchema(t *testing.T) {
	s := PayloadSchema()

	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"code", "message"}, s.Required)

	code, ok := s.Properties["code"]
	require.True(t, ok)
	assert.Equal(t, "string", code.Type)

	wantEnum := make([]any, 0, len(Codes()))
	for _, c := range Codes() {
		wantEnum = append(wantEnum, string(c))
	}
	assert.Equal(t, wantEnum, code.Enum)

	message, ok := s.Properties["message"]
	require.True(t, ok)
	assert.Equal(t, "string", message.Type)

	details, ok := s.Properties["details"]
	require.True(t, ok)
	assert.Equal(t, "object", details.Type)
}

// TestPayloadSchema_FreshCopy tests that callers receive an independent
// schema value on each call.
func TestPayloadSchema_FreshCopy(t *testing.T) {
	first := PayloadSchema()
	first.Required = append(first.Required, "details")
	first.Properties["code"].Enum = nil

	second := PayloadSchema()
	assert.Equal(t, []string{"code", "message"}, second.Required)
	assert.Len(t, second.Properties["code"].Enum, 11)
}
