package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range AllCategories {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestParseCategoryInvalid(t *testing.T) {
	for _, s := range []string{"", "Access_Control", "access control", "unknown"} {
		_, err := ParseCategory(s)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "input: %q", s)
		assert.Equal(t, "category", ve.Field)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "standard_answer", Message: "required"}
	assert.Equal(t, "validation failed on standard_answer: required", err.Error())
}
