package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsGameplay(t *testing.T) {
	t.Parallel()

	assert.True(t, IsGameplay(ErrInsufficientCards))
	assert.True(t, IsGameplay(fmt.Errorf("deal: %w", ErrPlayerNotFound)))
	assert.False(t, IsGameplay(errors.New("boom")))
	assert.False(t, IsGameplay(nil))
}

func TestCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ErrCodeCardMismatch, Code(ErrCardMismatch))
	assert.Equal(t, ErrCodeInsufficientCards, Code(fmt.Errorf("wrapped: %w", ErrInsufficientCards)))
	assert.Equal(t, ErrCodeUnknown, Code(errors.New("boom")))
}

func TestGameError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "player not found", ErrPlayerNotFound.Error())
}
