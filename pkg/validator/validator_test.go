package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,len=10,numeric"`
	Score int    `json:"score" validate:"gte=1,lte=5"`
}

func TestValidateOK(t *testing.T) {
	err := Validate(sampleRequest{
		Name:  "Asha Verma",
		Email: "asha@example.com",
		Phone: "9876543210",
		Score: 4,
	})
	assert.NoError(t, err)
}

func TestValidateCollectsAllFields(t *testing.T) {
	err := Validate(sampleRequest{Email: "not-an-email", Phone: "12ab", Score: 9})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "phone")
	assert.Contains(t, fields, "score")
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be a valid email address", fields["email"])
}

func TestValidationErrorMessage(t *testing.T) {
	err := Validate(sampleRequest{Name: "x", Email: "x@example.com", Phone: "9876543210", Score: 0})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Error(), "score")
}
