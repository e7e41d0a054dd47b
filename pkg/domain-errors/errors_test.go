package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("matches wrapped coded error", func(t *testing.T) {
		base := New(CodeNotFound, "product not found")
		err := fmt.Errorf("load page: %w", base)

		assert.True(t, HasCode(err, CodeNotFound))
		assert.True(t, Is(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
	})
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(cause, CodeUnavailable, "upstream unavailable")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "unavailable")
}

func TestValidationErrorListsFieldsInOrder(t *testing.T) {
	err := Validation(map[string]string{
		"phone": "must be 11 digits",
		"email": "must be a valid email address",
	})

	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, "validation_failed: validation failed (email: must be a valid email address; phone: must be 11 digits)", err.Error())
}
