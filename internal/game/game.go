package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/palemoky/uno/internal/apperrors"
	"github.com/palemoky/uno/internal/game/card"
)

// DefaultHandSize 每位玩家起手张数
const DefaultHandSize = 7

// Game 定义一局游戏的状态：玩家（按加入顺序）、牌堆、弃牌堆和当前牌
type Game struct {
	players  []Player
	deck     *card.Deck
	discard  []card.Card
	current  card.Card
	handSize int
	rng      *rand.Rand
}

type options struct {
	rng      *rand.Rand
	handSize int
}

// Option 新建游戏的选项
type Option func(*options)

// WithRand 指定洗牌用的随机源
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithSeed 使用固定种子洗牌，便于复现
func WithSeed(seed uint64) Option {
	return func(o *options) { o.rng = card.NewSeededRand(seed) }
}

// WithHandSize 修改起手张数
func WithHandSize(n int) Option {
	return func(o *options) {
		if n > 0 && n <= card.DeckSize {
			o.handSize = n
		}
	}
}

// New 初始化一局游戏：生成并洗好一副牌，翻开第一张作为当前牌
func New(opts ...Option) (*Game, error) {
	o := options{handSize: DefaultHandSize}
	for _, opt := range opts {
		opt(&o)
	}

	g := &Game{
		deck:     card.NewDeck(o.rng),
		handSize: o.handSize,
		rng:      o.rng,
	}

	first, err := g.deck.Draw()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot turn up the first card", apperrors.ErrInsufficientCards)
	}
	g.current = first

	return g, nil
}

// Restore 用已有数据重建游戏（不洗牌、不摸牌），用于解码
func Restore(players []Player, deck, discard []card.Card, current card.Card, handSize int) *Game {
	if handSize <= 0 || handSize > card.DeckSize {
		handSize = DefaultHandSize
	}
	g := &Game{
		players:  make([]Player, 0, len(players)),
		deck:     card.FromCards(deck),
		discard:  append([]card.Card(nil), discard...),
		current:  current,
		handSize: handSize,
	}
	for i := range players {
		g.players = append(g.players, *players[i].Clone())
	}
	return g
}

// Clone 深拷贝（随机源共享）
func (g *Game) Clone() *Game {
	c := Restore(g.players, g.deck.Cards(), g.discard, g.current, g.handSize)
	c.rng = g.rng
	return c
}

// AddPlayer 追加玩家的副本，不检查人数上限，也不检查 id 是否重复
func (g *Game) AddPlayer(p *Player) {
	g.players = append(g.players, *p.Clone())
}

// Players 返回玩家列表副本
func (g *Game) Players() []Player {
	players := make([]Player, len(g.players))
	for i := range g.players {
		players[i] = *g.players[i].Clone()
	}
	return players
}

// PlayerCount 玩家人数
func (g *Game) PlayerCount() int {
	return len(g.players)
}

// PlayerByID 按 id 查找玩家，返回列表内的指针以便原地修改
func (g *Game) PlayerByID(id int) *Player {
	for i := range g.players {
		if g.players[i].id == id {
			return &g.players[i]
		}
	}
	return nil
}

// HandSize 起手张数
func (g *Game) HandSize() int {
	return g.handSize
}

// DeckLen 牌堆剩余张数
func (g *Game) DeckLen() int {
	return g.deck.Len()
}

// Deck 牌堆剩余牌的副本（摸牌顺序）
func (g *Game) Deck() []card.Card {
	return g.deck.Cards()
}

// Discard 弃牌堆副本
func (g *Game) Discard() []card.Card {
	return append([]card.Card(nil), g.discard...)
}

// CurrentCard 当前牌（弃牌堆顶）
func (g *Game) CurrentCard() card.Card {
	return g.current
}

// CardMatches 判断 c 能否接当前牌
func (g *Game) CardMatches(c card.Card) bool {
	return card.Matches(c, g.current)
}

// Reshuffle 重洗牌堆中剩余的牌
func (g *Game) Reshuffle() {
	g.deck.Shuffle(g.rng)
}

// refill 确保牌堆至少有 n 张：不足时把弃牌堆洗回牌堆。
// 牌堆加弃牌堆仍不足 n 张时返回 ErrInsufficientCards，且不做任何改动。
func (g *Game) refill(n int) error {
	if g.deck.Len() >= n {
		return nil
	}
	if available := g.deck.Len() + len(g.discard); available < n {
		return fmt.Errorf("%w: need %d, %d left", apperrors.ErrInsufficientCards, n, available)
	}
	g.deck.Push(g.discard...)
	g.discard = nil
	g.Reshuffle()
	return nil
}

// DrawHand 从牌堆前端摸一手起手牌；牌不够时返回 ErrInsufficientCards，牌堆和弃牌堆不变
func (g *Game) DrawHand() ([]card.Card, error) {
	if err := g.refill(g.handSize); err != nil {
		return nil, err
	}
	hand, err := g.deck.DrawN(g.handSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInsufficientCards, err)
	}
	return hand, nil
}

// DrawCard 摸一张牌，规则同 DrawHand
func (g *Game) DrawCard() (card.Card, error) {
	if err := g.refill(1); err != nil {
		return card.Card{}, err
	}
	c, err := g.deck.Draw()
	if err != nil {
		return card.Card{}, fmt.Errorf("%w: %w", apperrors.ErrInsufficientCards, err)
	}
	return c, nil
}

// Play 打出 c：必须能接当前牌，原当前牌进入弃牌堆。不检查出牌顺序。
func (g *Game) Play(c card.Card) error {
	if !g.CardMatches(c) {
		return fmt.Errorf("%w: %s on %s", apperrors.ErrCardMismatch, c, g.current)
	}
	g.discard = append(g.discard, g.current)
	g.current = c
	return nil
}
