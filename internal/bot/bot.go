// Package bot 一个无界面的机器人玩家：入座后每回合能出就出，不能出就摸。
package bot

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/palemoky/uno/internal/apperrors"
	"github.com/palemoky/uno/internal/game"
	"github.com/palemoky/uno/internal/game/card"
	"github.com/palemoky/uno/internal/protocol"
)

// ErrNotSeated 入座之前不能出牌
var ErrNotSeated = errors.New("bot has not joined the game")

// RoundTripper 发送一条请求并等待响应
type RoundTripper interface {
	RoundTrip(req *protocol.Envelope) (*protocol.Envelope, error)
}

// Action 一回合做了什么
type Action int

const (
	ActionDraw Action = iota
	ActionPlay
)

func (a Action) String() string {
	if a == ActionPlay {
		return "play"
	}
	return "draw"
}

// Turn 一回合的结果
type Turn struct {
	Action   Action
	Card     *card.Card // 打出或摸到的牌
	Current  card.Card  // 回合结束后的当前牌
	Rejected string     // 服务端拒绝时的错误信息，为空表示成功
}

// Bot 机器人玩家
type Bot struct {
	rt      RoundTripper
	self    *game.Player
	current card.Card
	seated  bool
}

// DefaultName 生成一个随机的机器人名字
func DefaultName() string {
	return "bot-" + uuid.NewString()[:8]
}

// New 创建机器人，name 为空时使用随机名字
func New(rt RoundTripper, name string) *Bot {
	if name == "" {
		name = DefaultName()
	}
	return &Bot{rt: rt, self: game.NewPlayer(name, 0)}
}

// Self 机器人当前的玩家信息（副本）
func (b *Bot) Self() *game.Player {
	return b.self.Clone()
}

// Current 最近一次看到的当前牌
func (b *Bot) Current() card.Card {
	return b.current
}

// Join 入座，返回分配到的座位
func (b *Bot) Join() (int, error) {
	resp, err := b.rt.RoundTrip(protocol.New(nil, b.self))
	if err != nil {
		return 0, err
	}
	if ok, text := resp.IsSuccess(); !ok {
		return 0, fmt.Errorf("入座被拒绝: %s", deref(text))
	}
	if resp.Game == nil {
		return 0, apperrors.ErrNoGame
	}
	if resp.From == nil {
		return 0, apperrors.ErrPlayerNotFound
	}

	b.self = resp.From.Clone()
	b.current = resp.Game.CurrentCard()
	b.seated = true
	return b.self.ID(), nil
}

// Play 走一回合：手里有能接的牌就按 choose 挑一张打出，否则摸一张。
// 玩法错误记录在 Turn.Rejected 中，只有连接层面的错误才返回 error。
func (b *Bot) Play() (*Turn, error) {
	if !b.seated {
		return nil, ErrNotSeated
	}

	hand := b.self.Hand()
	if c, ok := choose(hand, card.Playable(hand, b.current)); ok {
		return b.PlayCard(c)
	}
	return b.send(protocol.New(nil, b.self), ActionDraw)
}

// choose 优先出手里最多的颜色，同色时先出功能牌，万能牌留到最后
func choose(hand, playable []card.Card) (card.Card, bool) {
	if len(playable) == 0 {
		return card.Card{}, false
	}

	counts := card.CountByColor(hand)
	score := func(c card.Card) int {
		if c.Color == card.Wild {
			return -1
		}
		s := counts[c.Color] * 2
		if !c.Kind.IsNumber() {
			s++
		}
		return s
	}

	best := playable[0]
	for _, c := range playable[1:] {
		if score(c) > score(best) {
			best = c
		}
	}
	return best, true
}

// PlayCard 打出指定的牌，不做本地校验，由服务端判定
func (b *Bot) PlayCard(c card.Card) (*Turn, error) {
	if !b.seated {
		return nil, ErrNotSeated
	}

	req := protocol.New(nil, b.self)
	req.AttachCard(c)
	return b.send(req, ActionPlay)
}

func (b *Bot) send(req *protocol.Envelope, action Action) (*Turn, error) {
	resp, err := b.rt.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	turn := &Turn{Action: action, Card: resp.Card}
	if resp.Game != nil {
		b.current = resp.Game.CurrentCard()
	}
	if ok, text := resp.IsSuccess(); !ok {
		turn.Rejected = deref(text)
		if turn.Rejected == "" {
			turn.Rejected = "rejected"
		}
	} else if resp.From != nil {
		b.self = resp.From.Clone()
	}

	turn.Current = b.current
	return turn, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
