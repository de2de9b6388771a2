package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/uno/internal/game"
	"github.com/palemoky/uno/internal/game/card"
)

func newTestGame(t *testing.T) *game.Game {
	t.Helper()

	g, err := game.New(game.WithSeed(8))
	require.NoError(t, err)
	for i, name := range []string{"alice", "bob"} {
		hand, err := g.DrawHand()
		require.NoError(t, err)
		p := game.NewPlayer(name, i)
		p.SetHand(hand)
		g.AddPlayer(p)
	}
	return g
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	e := New(nil, nil)

	ok, text := e.IsSuccess()
	assert.True(t, ok)
	assert.Nil(t, text)
	assert.Nil(t, e.Game)
	assert.Nil(t, e.From)
	assert.Nil(t, e.Card)
	assert.Nil(t, e.Response.Text)
}

func TestNew_CopiesArguments(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	from := game.NewPlayer("alice", 0)
	e := New(g, from)

	from.SetName("mallory")
	_, err := g.DrawHand()
	require.NoError(t, err)

	assert.Equal(t, "alice", e.From.Name())
	assert.Equal(t, g.DeckLen()+g.HandSize(), e.Game.DeckLen())
}

func TestIsSuccess(t *testing.T) {
	t.Parallel()

	t.Run("Success suppresses text", func(t *testing.T) {
		t.Parallel()
		text := "ignored"
		e := New(nil, nil)
		e.Response.Text = &text

		ok, got := e.IsSuccess()
		assert.True(t, ok)
		assert.Nil(t, got)
	})

	t.Run("Error returns text", func(t *testing.T) {
		t.Parallel()
		e := New(nil, nil)
		e.SetErrorText("bad move")

		ok, got := e.IsSuccess()
		assert.False(t, ok)
		require.NotNil(t, got)
		assert.Equal(t, "bad move", *got)
	})

	t.Run("Error without text", func(t *testing.T) {
		t.Parallel()
		e := New(nil, nil)
		e.SetError(nil)

		ok, got := e.IsSuccess()
		assert.False(t, ok)
		assert.Nil(t, got)
	})
}

func TestFail(t *testing.T) {
	t.Parallel()

	g := game.Restore(nil, nil, nil, card.Card{}, 0)
	_, err := g.DrawHand()
	require.Error(t, err)

	e := New(nil, nil)
	e.Fail(err)

	ok, text := e.IsSuccess()
	assert.False(t, ok)
	require.NotNil(t, text)
	assert.Contains(t, *text, "not enough cards")
}

func TestFindPlayer(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	e := New(g, nil)

	p, ok := e.FindPlayer(game.NewPlayer("whoever", 1))
	require.True(t, ok)
	assert.Equal(t, "bob", p.Name())
	assert.Equal(t, 7, p.HandSize())

	_, ok = e.FindPlayer(game.NewPlayer("bob", 9))
	assert.False(t, ok)

	_, ok = e.FindPlayer(nil)
	assert.False(t, ok)

	_, ok = New(nil, nil).FindPlayer(game.NewPlayer("bob", 1))
	assert.False(t, ok)
	assert.Nil(t, New(nil, nil).FindPlayerRef(game.NewPlayer("bob", 1)))
}

func TestFindPlayerRef_MutatesGame(t *testing.T) {
	t.Parallel()

	e := New(newTestGame(t), nil)
	who := game.NewPlayer("", 0)

	ref := e.FindPlayerRef(who)
	require.NotNil(t, ref)
	ref.AddCards(card.Card{Color: card.Wild, Kind: card.WildCard})

	p, ok := e.FindPlayer(who)
	require.True(t, ok)
	assert.Equal(t, 8, p.HandSize())

	// FindPlayer returns a copy
	p.SetHand(nil)
	assert.Equal(t, 8, e.FindPlayerRef(who).HandSize())
}

func TestAttachCard(t *testing.T) {
	t.Parallel()

	c := card.Card{Color: card.Red, Kind: card.Five}
	e := New(nil, nil)
	e.AttachCard(c)
	c.Kind = card.Six

	require.NotNil(t, e.Card)
	assert.Equal(t, card.Card{Color: card.Red, Kind: card.Five}, *e.Card)
}
