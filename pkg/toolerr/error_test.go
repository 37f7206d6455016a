package toolerr

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	e := New(ErrCodeNotFound, "missing widget")

	assert.Equal(t, ErrCodeNotFound, e.Code())
	assert.Equal(t, "missing widget", e.Message())
	assert.Nil(t, e.Details())
	assert.Equal(t, "NOT_FOUND: missing widget", e.Error())
}

func TestNewf(t *testing.T) {
	e := Newf(ErrCodeNotFound, "server %q not found", "calc")

	assert.Equal(t, ErrCodeNotFound, e.Code())
	assert.Equal(t, `server "calc" not found`, e.Message())
}

// TestWrap_Unwrap tests that wrapping preserves the cause for errors.Is and
// errors.As across the classification boundary.
func TestWrap_Unwrap(t *testing.T) {
	sentinel := errors.New("connection refused")
	e := Wrap(ErrCodeServiceUnavailable, "server unavailable", sentinel)

	assert.Equal(t, ErrCodeServiceUnavailable, e.Code())
	assert.ErrorIs(t, e, sentinel)

	chained := fmt.Errorf("call failed: %w", e)
	var structured *Error
	require.ErrorAs(t, chained, &structured)
	assert.Equal(t, ErrCodeServiceUnavailable, structured.Code())
}

// TestWithDetails_ClonesInput tests that the error owns its details map
// exclusively: mutating the caller's map afterwards changes nothing.
func TestWithDetails_ClonesInput(t *testing.T) {
	input := map[string]any{"field": "name"}
	e := New(ErrCodeValidation, "bad field").WithDetails(input)

	input["field"] = "mutated"
	input["extra"] = true

	assert.Equal(t, map[string]any{"field": "name"}, e.Details())
}

// TestWithDetails_ReturnsCopy tests that WithDetails derives a new value and
// leaves the receiver untouched.
func TestWithDetails_ReturnsCopy(t *testing.T) {
	base := New(ErrCodeValidation, "bad field")
	derived := base.WithDetails(map[string]any{"field": "name"})

	assert.Nil(t, base.Details())
	assert.NotNil(t, derived.Details())
	assert.Equal(t, base.Code(), derived.Code())
	assert.Equal(t, base.Message(), derived.Message())
}

func TestWithDetails_EmptyMapMeansNone(t *testing.T) {
	e := New(ErrCodeValidation, "bad field").WithDetails(map[string]any{})
	assert.Nil(t, e.Details())
}

// TestDetails_ReturnsCopy tests that callers cannot reach the internal map
// through the accessor.
func TestDetails_ReturnsCopy(t *testing.T) {
	e := New(ErrCodeValidation, "bad field").WithDetails(map[string]any{"field": "name"})

	leaked := e.Details()
	leaked["field"] = "mutated"

	assert.Equal(t, map[string]any{"field": "name"}, e.Details())
}

func TestLogValue(t *testing.T) {
	e := New(ErrCodeTimeout, "deadline exceeded").WithDetails(map[string]any{"timeout": "30s"})

	v := e.LogValue()
	require.Equal(t, slog.KindGroup, v.Kind())

	got := map[string]slog.Value{}
	for _, attr := range v.Group() {
		got[attr.Key] = attr.Value
	}
	assert.Equal(t, "TIMEOUT", got["code"].String())
	assert.Equal(t, "deadline exceeded", got["message"].String())
	assert.Contains(t, got, "details")
}

func TestLogValue_NoDetails(t *testing.T) {
	v := New(ErrCodeNotFound, "missing widget").LogValue()
	require.Equal(t, slog.KindGroup, v.Kind())
	assert.Len(t, v.Group(), 2)
}
