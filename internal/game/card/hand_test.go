package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hand     []Card
		remove   Card
		expected []Card
		found    bool
	}{
		{
			name:     "Removes single copy",
			hand:     []Card{{Red, Five}, {Blue, Two}, {Red, Five}},
			remove:   Card{Red, Five},
			expected: []Card{{Blue, Two}, {Red, Five}},
			found:    true,
		},
		{
			name:     "Missing card",
			hand:     []Card{{Red, Five}},
			remove:   Card{Green, Five},
			expected: []Card{{Red, Five}},
			found:    false,
		},
		{
			name:     "Empty hand",
			hand:     nil,
			remove:   Card{Wild, WildCard},
			expected: nil,
			found:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, found := Remove(tt.hand, tt.remove)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPlayable(t *testing.T) {
	t.Parallel()

	hand := []Card{
		{Red, Five},
		{Green, Two},
		{Blue, Nine},
		{Wild, DrawFour},
	}

	playable := Playable(hand, Card{Blue, Five})

	assert.Equal(t, []Card{{Red, Five}, {Blue, Nine}, {Wild, DrawFour}}, playable)
	assert.Empty(t, Playable([]Card{{Green, Two}}, Card{Blue, Five}))
}

func TestCountByColor(t *testing.T) {
	t.Parallel()

	counts := CountByColor([]Card{{Red, One}, {Red, Two}, {Wild, WildCard}})

	assert.Equal(t, 2, counts[Red])
	assert.Equal(t, 1, counts[Wild])
	assert.Equal(t, 0, counts[Blue])
}

func TestFormatHand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Red Five, Wild DrawFour", FormatHand([]Card{{Red, Five}, {Wild, DrawFour}}))
	assert.Equal(t, "", FormatHand(nil))
}
