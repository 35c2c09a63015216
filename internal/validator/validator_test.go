package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type referenceForm struct {
	Name    string `json:"name" validate:"notblank"`
	Phone   string `json:"phone" validate:"notblank"`
	Variant string `json:"variant" validate:"oneof=none employment_history references"`
}

func TestValidatePasses(t *testing.T) {
	v := New()
	err := v.Validate(&referenceForm{Name: "Jo Smith", Phone: "07000000001", Variant: "references"})
	assert.NoError(t, err)
}

func TestValidateNotBlankRejectsWhitespace(t *testing.T) {
	v := New()
	err := v.Validate(&referenceForm{Name: "   ", Phone: "07000000001", Variant: "none"})

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)

	// Field names come from the json tags, not the Go names.
	assert.Equal(t, "This field is required", vErr.Errors["name"])
	assert.NotContains(t, vErr.Errors, "Name")
}

func TestValidateOneOf(t *testing.T) {
	v := New()
	err := v.Validate(&referenceForm{Name: "Jo", Phone: "07000000001", Variant: "bogus"})

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors["variant"], "Must be one of")
}
