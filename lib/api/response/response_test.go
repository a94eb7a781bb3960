package response

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
	"zylumine/lib/validate"
)

func TestInvalid(t *testing.T) {
	missing := &validate.Error{Fields: []validate.FieldError{{Field: "rating", Tag: "required"}}}
	r := Invalid(missing)
	assert.False(t, r.Success)
	assert.Equal(t, "Missing required fields", r.Error)
	assert.Empty(t, r.Details)

	r = Invalid(errors.New("json: unknown field \"admin\""))
	assert.Equal(t, "Invalid request", r.Error)
	assert.Equal(t, "json: unknown field \"admin\"", r.Details)
}

func TestOk(t *testing.T) {
	r := Ok("Email sent!", nil)
	assert.True(t, r.Success)
	assert.Equal(t, "Email sent!", r.Message)
	assert.NotEmpty(t, r.Timestamp)
}
