package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifehub/pkg/apperr"
)

type sampleForm struct {
	Title string `json:"title" validate:"required,max=5"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(&sampleForm{Title: "too long for five", Email: "nope"})
	require.True(t, apperr.IsValidation(err))

	fields := apperr.FieldErrors(err)
	assert.Equal(t, "must be at most 5 characters", fields["title"])
	assert.Equal(t, "enter a valid email address", fields["email"])
}

func TestStructRequiredMessage(t *testing.T) {
	err := Struct(&sampleForm{})
	require.True(t, apperr.IsValidation(err))
	assert.Equal(t, "this field is required", apperr.FieldErrors(err)["title"])
}

func TestStructPassesValidForm(t *testing.T) {
	assert.NoError(t, Struct(&sampleForm{Title: "ok", Email: "a@b.co"}))
}
