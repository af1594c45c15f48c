package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/target/deptdash/internal/domain/auth"
	apperrors "github.com/target/deptdash/internal/errors"
)

func TestInputValidator(t *testing.T) {
	v := newInputValidator()

	assert.NoError(t, v.Struct(domainauth.Credentials{Email: "ada@example.com", Password: "pw"}))

	err := v.Struct(domainauth.Registration{Name: "Ada", Email: "nope", Password: "pw"})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "email", apperrors.GetField(err))
	assert.Equal(t, "email must be a valid email", apperrors.Message(err))
}
