package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, ErrCodeUnavailable, "list sections")

	assert.True(t, IsUnavailable(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "list sections: connection refused", err.Error())
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "nope"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "nope %d", 1))
}

func TestCodePredicates(t *testing.T) {
	assert.True(t, IsUnauthorized(Unauthorized("bad credentials")))
	assert.True(t, IsNotFound(NotFoundf("section %s", "abc")))
	assert.True(t, IsValidation(ValidationField("name", "required")))
	assert.False(t, IsUnauthorized(NotFound("missing")))
	assert.False(t, IsNotFound(stderrors.New("plain")))
}
