package protocol

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/palemoky/uno/internal/game"
	"github.com/palemoky/uno/internal/game/card"
)

// Field numbers of the payload. The layout follows the protobuf wire format
// so the payload can be inspected with standard protobuf tooling:
//
//	Envelope { 1: Game, 2: Player from, 3: Card, 4: Response }
//	Response { 1: kind, 2: text }
//	Card     { 1: color, 2: kind }
//	Player   { 1: name, 2: id, 3: repeated Card hand }
//	Game     { 1: repeated Player, 2: repeated Card deck, 3: Card current, 4: repeated Card discard, 5: hand size }
const (
	envelopeGame     protowire.Number = 1
	envelopeFrom     protowire.Number = 2
	envelopeCard     protowire.Number = 3
	envelopeResponse protowire.Number = 4

	responseKind protowire.Number = 1
	responseText protowire.Number = 2

	cardColor protowire.Number = 1
	cardKind  protowire.Number = 2

	playerName protowire.Number = 1
	playerID   protowire.Number = 2
	playerHand protowire.Number = 3

	gamePlayer   protowire.Number = 1
	gameDeck     protowire.Number = 2
	gameCurrent  protowire.Number = 3
	gameDiscard  protowire.Number = 4
	gameHandSize protowire.Number = 5
)

// MarshalBinary encodes the envelope payload (without framing).
func (e *Envelope) MarshalBinary() ([]byte, error) {
	return e.AppendBinary(nil)
}

// AppendBinary appends the encoded envelope to b.
func (e *Envelope) AppendBinary(b []byte) ([]byte, error) {
	b, err := e.appendFields(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return b, nil
}

func (e *Envelope) appendFields(b []byte) ([]byte, error) {
	var err error
	if e.Game != nil {
		b, err = appendMessage(b, envelopeGame, func(b []byte) ([]byte, error) { return appendGame(b, e.Game) })
		if err != nil {
			return nil, err
		}
	}
	if e.From != nil {
		b, err = appendMessage(b, envelopeFrom, func(b []byte) ([]byte, error) { return appendPlayer(b, e.From) })
		if err != nil {
			return nil, err
		}
	}
	if e.Card != nil {
		b = appendCardField(b, envelopeCard, *e.Card)
	}
	return appendMessage(b, envelopeResponse, func(b []byte) ([]byte, error) {
		b = protowire.AppendTag(b, responseKind, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(e.Response.Kind))
		if e.Response.Text != nil {
			b = protowire.AppendTag(b, responseText, protowire.BytesType)
			b = protowire.AppendString(b, *e.Response.Text)
		}
		return b, nil
	})
}

// appendMessage writes a length-delimited submessage produced by fn.
func appendMessage(b []byte, num protowire.Number, fn func([]byte) ([]byte, error)) ([]byte, error) {
	body, err := fn(nil)
	if err != nil {
		return nil, err
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, body), nil
}

func appendCardField(b []byte, num protowire.Number, c card.Card) []byte {
	var body []byte
	body = protowire.AppendTag(body, cardColor, protowire.VarintType)
	body = protowire.AppendVarint(body, uint64(c.Color))
	body = protowire.AppendTag(body, cardKind, protowire.VarintType)
	body = protowire.AppendVarint(body, uint64(c.Kind))

	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, body)
}

func appendPlayer(b []byte, p *game.Player) ([]byte, error) {
	if p.ID() < 0 || p.ID() > maxPlayerID {
		return nil, fmt.Errorf("player %q has invalid id %d", p.Name(), p.ID())
	}
	b = protowire.AppendTag(b, playerName, protowire.BytesType)
	b = protowire.AppendString(b, p.Name())
	b = protowire.AppendTag(b, playerID, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.ID()))
	for _, c := range p.Hand() {
		b = appendCardField(b, playerHand, c)
	}
	return b, nil
}

func appendGame(b []byte, g *game.Game) ([]byte, error) {
	var err error
	for _, p := range g.Players() {
		b, err = appendMessage(b, gamePlayer, func(b []byte) ([]byte, error) { return appendPlayer(b, &p) })
		if err != nil {
			return nil, err
		}
	}
	for _, c := range g.Deck() {
		b = appendCardField(b, gameDeck, c)
	}
	b = appendCardField(b, gameCurrent, g.CurrentCard())
	for _, c := range g.Discard() {
		b = appendCardField(b, gameDiscard, c)
	}
	b = protowire.AppendTag(b, gameHandSize, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(g.HandSize())), nil
}

// UnmarshalBinary decodes an envelope payload, replacing every field of e.
// e is left untouched on failure.
func (e *Envelope) UnmarshalBinary(b []byte) error {
	var (
		decoded     Envelope
		hasResponse bool
	)
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case envelopeGame:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			if decoded.Game, err = decodeGame(v); err != nil {
				return 0, fmt.Errorf("game: %w", err)
			}
			return n, nil
		case envelopeFrom:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			if decoded.From, err = decodePlayer(v); err != nil {
				return 0, fmt.Errorf("from: %w", err)
			}
			return n, nil
		case envelopeCard:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			c, err := decodeCard(v)
			if err != nil {
				return 0, fmt.Errorf("card: %w", err)
			}
			decoded.Card = &c
			return n, nil
		case envelopeResponse:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			if decoded.Response, err = decodeResponse(v); err != nil {
				return 0, fmt.Errorf("response: %w", err)
			}
			hasResponse = true
			return n, nil
		}
		return 0, nil
	})
	if err == nil && !hasResponse {
		err = errors.New("missing response")
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	*e = decoded
	return nil
}

// fieldHandler consumes the value of one field and returns its length.
// Returning 0 skips the field as unknown.
type fieldHandler func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func walkFields(b []byte, handle fieldHandler) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		m, err := handle(num, typ, b)
		if err != nil {
			return err
		}
		if m == 0 {
			m = protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return protowire.ParseError(m)
			}
		}
		b = b[m:]
	}
	return nil
}

func consumeBytes(typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, fmt.Errorf("unexpected wire type %d", typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeVarint(typ protowire.Type, b []byte) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, fmt.Errorf("unexpected wire type %d", typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func decodeResponse(b []byte) (Response, error) {
	var (
		r       Response
		hasKind bool
	)
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case responseKind:
			v, n, err := consumeVarint(typ, b)
			if err != nil {
				return 0, err
			}
			if v > uint64(ResponseError) {
				return 0, fmt.Errorf("invalid response kind %d", v)
			}
			r.Kind = ResponseKind(v)
			hasKind = true
			return n, nil
		case responseText:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			text := string(v)
			r.Text = &text
			return n, nil
		}
		return 0, nil
	})
	if err != nil {
		return Response{}, err
	}
	if !hasKind {
		return Response{}, errors.New("missing response kind")
	}
	return r, nil
}

func decodeCard(b []byte) (card.Card, error) {
	var (
		c                 card.Card
		hasColor, hasKind bool
	)
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case cardColor:
			v, n, err := consumeVarint(typ, b)
			if err != nil {
				return 0, err
			}
			if v > 0xff || !card.Color(v).Valid() {
				return 0, fmt.Errorf("invalid color %d", v)
			}
			c.Color = card.Color(v)
			hasColor = true
			return n, nil
		case cardKind:
			v, n, err := consumeVarint(typ, b)
			if err != nil {
				return 0, err
			}
			if v > 0xff || !card.Kind(v).Valid() {
				return 0, fmt.Errorf("invalid kind %d", v)
			}
			c.Kind = card.Kind(v)
			hasKind = true
			return n, nil
		}
		return 0, nil
	})
	if err != nil {
		return card.Card{}, err
	}
	if !hasColor || !hasKind {
		return card.Card{}, errors.New("incomplete card")
	}
	return c, nil
}

// decodeCardField decodes a length-delimited card value and appends it to dst.
func decodeCardField(typ protowire.Type, b []byte, dst *[]card.Card) (int, error) {
	v, n, err := consumeBytes(typ, b)
	if err != nil {
		return 0, err
	}
	c, err := decodeCard(v)
	if err != nil {
		return 0, err
	}
	*dst = append(*dst, c)
	return n, nil
}

func decodePlayer(b []byte) (*game.Player, error) {
	var (
		name string
		id   int
		hand []card.Card
	)
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case playerName:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			name = string(v)
			return n, nil
		case playerID:
			v, n, err := consumeVarint(typ, b)
			if err != nil {
				return 0, err
			}
			if v > uint64(maxPlayerID) {
				return 0, fmt.Errorf("player id %d out of range", v)
			}
			id = int(v)
			return n, nil
		case playerHand:
			return decodeCardField(typ, b, &hand)
		}
		return 0, nil
	})
	if err != nil {
		return nil, err
	}
	p := game.NewPlayer(name, id)
	p.SetHand(hand)
	return p, nil
}

// maxPlayerID keeps decoded ids representable as int on every platform.
const maxPlayerID = 1<<31 - 1

func decodeGame(b []byte) (*game.Game, error) {
	var (
		players       []game.Player
		deck, discard []card.Card
		current       card.Card
		hasCurrent    bool
		handSize      int
	)
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case gamePlayer:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			p, err := decodePlayer(v)
			if err != nil {
				return 0, fmt.Errorf("player %d: %w", len(players), err)
			}
			players = append(players, *p)
			return n, nil
		case gameDeck:
			return decodeCardField(typ, b, &deck)
		case gameCurrent:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			if current, err = decodeCard(v); err != nil {
				return 0, fmt.Errorf("current card: %w", err)
			}
			hasCurrent = true
			return n, nil
		case gameDiscard:
			return decodeCardField(typ, b, &discard)
		case gameHandSize:
			v, n, err := consumeVarint(typ, b)
			if err != nil {
				return 0, err
			}
			if v > card.DeckSize {
				return 0, fmt.Errorf("hand size %d out of range", v)
			}
			handSize = int(v)
			return n, nil
		}
		return 0, nil
	})
	if err != nil {
		return nil, err
	}
	if !hasCurrent {
		return nil, errors.New("missing current card")
	}
	return game.Restore(players, deck, discard, current, handSize), nil
}
