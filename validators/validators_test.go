package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email string `validate:"required,email"`
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(sampleRequest{Email: "a@example.com"}))
	assert.Error(t, v.Validate(sampleRequest{Email: "not-an-email"}))
	assert.Error(t, v.Validate(sampleRequest{}))
}
