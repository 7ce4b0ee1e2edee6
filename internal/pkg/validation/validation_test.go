package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
)

type sample struct {
	Title   string `json:"title" validate:"notblank"`
	Content string `json:"content" validate:"required"`
	Filter  string `json:"filter" validate:"omitempty,oneof=all admitted"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Title: "A", Content: "B"}))

	err := Struct(sample{Title: "   ", Content: ""})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	assert.Equal(t, "title is required; content is required", err.Error())

	var ce *apperrors.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Details, "title")

	err = Struct(sample{Title: "A", Content: "B", Filter: "none"})
	assert.EqualError(t, err, "filter must be one of: all admitted")
}
