package game

import (
	"github.com/palemoky/uno/internal/game/card"
)

// Player 玩家
//
// id 同时承担两个角色：座位号（出牌顺序）以及在对局玩家列表中查找该玩家的唯一键。
// 调用方需保证同一局中 id 不重复。
type Player struct {
	name string
	id   int
	hand []card.Card
}

// NewPlayer 创建玩家
func NewPlayer(name string, id int) *Player {
	return &Player{name: name, id: id}
}

func (p *Player) Name() string        { return p.name }
func (p *Player) SetName(name string) { p.name = name }

// ID 座位号兼查找键
func (p *Player) ID() int { return p.id }

// SetID 设置座位号兼查找键，应为非负数
func (p *Player) SetID(id int) { p.id = id }

// Hand 返回手牌副本
func (p *Player) Hand() []card.Card {
	return append([]card.Card(nil), p.hand...)
}

// SetHand 替换手牌
func (p *Player) SetHand(cards []card.Card) {
	p.hand = append([]card.Card(nil), cards...)
}

// HandSize 手牌张数
func (p *Player) HandSize() int {
	return len(p.hand)
}

// AddCards 把牌加入手牌
func (p *Player) AddCards(cards ...card.Card) {
	p.hand = append(p.hand, cards...)
}

// HasCard 手牌中是否有 c
func (p *Player) HasCard(c card.Card) bool {
	return card.IndexOf(p.hand, c) >= 0
}

// RemoveCard 从手牌中移除一张 c
func (p *Player) RemoveCard(c card.Card) bool {
	var ok bool
	p.hand, ok = card.Remove(p.hand, c)
	return ok
}

// Clone 深拷贝
func (p *Player) Clone() *Player {
	return &Player{name: p.name, id: p.id, hand: p.Hand()}
}
