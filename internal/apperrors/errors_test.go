package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameError_WrapAndIs(t *testing.T) {
	t.Parallel()

	err := ErrUndefinedCard.Wrapf("suit %d rank %d", 9, 3)
	assert.True(t, errors.Is(err, ErrUndefinedCard))
	assert.False(t, errors.Is(err, ErrBadOrder))
	assert.Equal(t, "card identity not defined by variant: suit 9 rank 3", err.Error())

	outer := fmt.Errorf("recompute: %w", err)
	assert.True(t, errors.Is(outer, ErrUndefinedCard))
	assert.Equal(t, CodeUndefinedCard, GetCode(outer))
}

func TestGetCode_Unknown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CodeUnknown, GetCode(errors.New("boom")))
	assert.Equal(t, CodeGameNotFound, GetCode(ErrGameNotFound))
	assert.Equal(t, "game not found", ErrGameNotFound.Error())
}
