package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/uno/internal/game/card"
)

func TestPlayer_Accessors(t *testing.T) {
	t.Parallel()

	var p Player
	assert.Equal(t, "", p.Name())
	assert.Equal(t, 0, p.ID())
	assert.Empty(t, p.Hand())

	p.SetName("dave")
	p.SetID(3)
	p.SetHand([]card.Card{{Color: card.Green, Kind: card.Seven}})

	assert.Equal(t, "dave", p.Name())
	assert.Equal(t, 3, p.ID())
	assert.Equal(t, []card.Card{{Color: card.Green, Kind: card.Seven}}, p.Hand())
}

func TestPlayer_HandIsCopied(t *testing.T) {
	t.Parallel()

	hand := []card.Card{{Color: card.Red, Kind: card.One}}
	p := NewPlayer("erin", 0)
	p.SetHand(hand)
	hand[0] = card.Card{Color: card.Blue, Kind: card.Two}

	got := p.Hand()
	got[0] = card.Card{Color: card.Yellow, Kind: card.Three}

	assert.Equal(t, []card.Card{{Color: card.Red, Kind: card.One}}, p.Hand())
}

func TestPlayer_RemoveCard(t *testing.T) {
	t.Parallel()

	redOne := card.Card{Color: card.Red, Kind: card.One}
	p := NewPlayer("finn", 1)
	p.AddCards(redOne, redOne)

	assert.True(t, p.HasCard(redOne))
	assert.True(t, p.RemoveCard(redOne))
	assert.Equal(t, 1, p.HandSize())
	assert.True(t, p.RemoveCard(redOne))
	assert.False(t, p.RemoveCard(redOne))
	assert.False(t, p.HasCard(redOne))
}

func TestPlayer_Clone(t *testing.T) {
	t.Parallel()

	p := NewPlayer("gail", 2)
	p.AddCards(card.Card{Color: card.Wild, Kind: card.WildCard})

	c := p.Clone()
	c.AddCards(card.Card{Color: card.Red, Kind: card.Zero})
	c.SetID(5)

	assert.Equal(t, 1, p.HandSize())
	assert.Equal(t, 2, p.ID())
}
