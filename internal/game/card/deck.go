package card

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// DeckSize 一副完整牌的张数
const DeckSize = 112

// ErrEmptyDeck 牌堆中的牌不够
var ErrEmptyDeck = errors.New("empty deck")

// coloredKinds 每种颜色包含的牌面
var coloredKinds = []Kind{Zero, One, Two, Three, Four, Five, Six, Seven, Eight, Nine, Reverse, DrawTwo, Cancel}

// Canonical 返回未洗牌的 112 张牌：
// 红蓝绿黄各 13 种牌面各 2 张（104 张），外加 4 张 +4 和 4 张变色牌。
func Canonical() []Card {
	cards := make([]Card, 0, DeckSize)
	for range 2 {
		for c := Red; c <= Yellow; c++ {
			for _, k := range coloredKinds {
				cards = append(cards, Card{Color: c, Kind: k})
			}
		}
		for range 2 {
			cards = append(cards,
				Card{Color: Wild, Kind: DrawFour},
				Card{Color: Wild, Kind: WildCard},
			)
		}
	}
	return cards
}

// NewSeededRand 返回可复现的随机源，用于测试固定发牌顺序
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Deck 定义牌堆，从前端摸牌
type Deck struct {
	cards []Card
}

// NewDeck 生成一副洗好的新牌。rng 为 nil 时使用全局随机源。
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{cards: Canonical()}
	d.Shuffle(rng)
	return d
}

// FromCards 按给定顺序构建牌堆（不洗牌）
func FromCards(cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// Shuffle 对剩余的牌做 Fisher-Yates 洗牌，不增不减
func (d *Deck) Shuffle(rng *rand.Rand) {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := intN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Len 剩余张数
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards 返回剩余牌的副本
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}

// Draw 从牌堆前端摸一张牌
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

// DrawN 摸 n 张牌；不够时不摸并返回错误
func (d *Deck) DrawN(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid draw count %d", n)
	}
	if len(d.cards) < n {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrEmptyDeck, n, len(d.cards))
	}
	drawn := make([]Card, n)
	copy(drawn, d.cards[:n])
	d.cards = d.cards[n:]
	return drawn, nil
}

// Push 把牌放回牌堆底部
func (d *Deck) Push(cards ...Card) {
	d.cards = append(d.cards, cards...)
}
