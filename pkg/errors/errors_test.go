package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels(t *testing.T) {
	sentinels := []error{ErrPlayerNotFound, ErrNilPlayer, ErrInvalidID, ErrInvalidInput}
	for i, a := range sentinels {
		for j, b := range sentinels {
			assert.Equal(t, i == j, errors.Is(a, b), "%v vs %v", a, b)
		}
	}

	wrapped := fmt.Errorf("%w: %q", ErrInvalidID, "abc")
	assert.ErrorIs(t, wrapped, ErrInvalidID)
	assert.NotErrorIs(t, wrapped, ErrInvalidInput)
	assert.Nil(t, errors.Unwrap(ErrInvalidInput))
}
