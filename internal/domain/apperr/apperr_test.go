package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsMatchWithErrorsIs(t *testing.T) {
	err := Conflict("vet %s busy", "Dr. X")

	assert.True(t, errors.Is(err, ErrBusinessRule))
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrInvalidTransition))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "vet Dr. X busy", err.Error())
}

func TestKindOf_SurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", NotFound("client %s", "c-1"))

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, ErrNotFound, KindOf(wrapped))
	assert.Nil(t, KindOf(errors.New("plain")))
}
