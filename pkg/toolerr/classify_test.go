package toolerr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError_Nil(t *testing.T) {
	assert.Nil(t, FromError(nil))
}

// TestFromError_Passthrough tests that an already classified error keeps its
// code, even when buried in a wrap chain.
func TestFromError_Passthrough(t *testing.T) {
	original := New(ErrCodeForbidden, "tool not allowed")

	assert.Same(t, original, FromError(original))

	chained := fmt.Errorf("call failed: %w", original)
	assert.Same(t, original, FromError(chained))
}

func TestFromError_DeadlineExceeded(t *testing.T) {
	err := fmt.Errorf("downstream call: %w", context.DeadlineExceeded)

	e := FromError(err)
	require.NotNil(t, e)
	assert.Equal(t, ErrCodeTimeout, e.Code())
	assert.ErrorIs(t, e, context.DeadlineExceeded)
}

// TestFromError_Default tests that unclassified failures fall back to
// UNKNOWN_ERROR with the cause retained.
func TestFromError_Default(t *testing.T) {
	cause := errors.New("something odd")

	e := FromError(cause)
	require.NotNil(t, e)
	assert.Equal(t, ErrCodeUnknown, e.Code())
	assert.Equal(t, "something odd", e.Message())
	assert.ErrorIs(t, e, cause)
}
