package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/uno/internal/apperrors"
	"github.com/palemoky/uno/internal/game"
	"github.com/palemoky/uno/internal/game/card"
	"github.com/palemoky/uno/internal/logger"
	"github.com/palemoky/uno/internal/protocol"
)

const statsTimeout = 2 * time.Second

// statsEvent 一次待写入的统计
type statsEvent func(ctx context.Context) error

// Match 一局对局：由 uuid 标识，所有请求在锁内串行处理
type Match struct {
	id    string
	stats StatsRecorder

	mu      sync.Mutex
	game    *game.Game
	pending []statsEvent // 锁内产生、解锁后写入
}

// NewMatch 创建对局并翻开第一张牌
func NewMatch(stats StatsRecorder, opts ...game.Option) (*Match, error) {
	g, err := game.New(opts...)
	if err != nil {
		return nil, err
	}

	m := &Match{
		id:    uuid.NewString(),
		stats: stats,
		game:  g,
	}
	m.record(func(ctx context.Context) error { return stats.RecordMatchStarted(ctx, m.id) })
	return m, nil
}

// ID 对局 ID
func (m *Match) ID() string {
	return m.id
}

// Snapshot 返回当前游戏状态的副本
func (m *Match) Snapshot() *game.Game {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.game.Clone()
}

// Handle 根据请求中已填写的字段分派：
//   - 无发送者：错误
//   - 带牌：出牌
//   - 不带牌且发送者未入座：入座并发牌
//   - 不带牌且发送者已入座：摸一张牌
//
// 玩法错误以错误响应返回，连接继续可用。
func (m *Match) Handle(req *protocol.Envelope) *protocol.Envelope {
	if req.From == nil {
		resp := protocol.New(nil, nil)
		resp.Fail(apperrors.ErrMissingSender)
		return resp
	}

	resp, events := m.handle(req)
	for _, ev := range events {
		m.record(ev)
	}
	return resp
}

// handle 在对局锁内处理请求，返回响应和本次产生的统计
func (m *Match) handle(req *protocol.Envelope) (*protocol.Envelope, []statsEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		resp *protocol.Envelope
		err  error
	)
	switch {
	case req.Card != nil:
		resp, err = m.play(req.From, *req.Card)
	case m.seated(req.From) == nil:
		resp, err = m.join(req.From)
	default:
		resp, err = m.draw(req.From)
	}
	if err != nil {
		resp = m.reject(req.From, err)
	}

	events := m.pending
	m.pending = nil
	return resp, events
}

// reject 记录日志并构造错误响应。玩法错误属于正常拒绝，其余错误按异常记录
func (m *Match) reject(who *game.Player, err error) *protocol.Envelope {
	if apperrors.IsGameplay(err) {
		logger.LogInfo("🚫 [%s] 拒绝 %s 的请求 (code %d): %v", m.shortID(), who.Name(), apperrors.Code(err), err)
	} else {
		logger.LogError("💥 [%s] 处理 %s 的请求出错: %v", m.shortID(), who.Name(), err)
	}

	resp := protocol.New(m.game, who)
	resp.Fail(err)
	return resp
}

// seated 按 id 查找已入座的玩家，名字不一致视为不同玩家
func (m *Match) seated(who *game.Player) *game.Player {
	p := m.game.PlayerByID(who.ID())
	if p == nil || p.Name() != who.Name() {
		return nil
	}
	return p
}

func (m *Match) join(who *game.Player) (*protocol.Envelope, error) {
	hand, err := m.game.DrawHand()
	if err != nil {
		return nil, err
	}

	p := game.NewPlayer(who.Name(), m.game.PlayerCount())
	p.SetHand(hand)
	m.game.AddPlayer(p)

	logger.LogInfo("🪑 [%s] %s 入座，座位 %d", m.shortID(), p.Name(), p.ID())
	m.pending = append(m.pending, func(ctx context.Context) error { return m.stats.RecordJoin(ctx, m.id) })

	return protocol.New(m.game, p), nil
}

func (m *Match) play(who *game.Player, c card.Card) (*protocol.Envelope, error) {
	p := m.seated(who)
	if p == nil {
		return nil, apperrors.ErrPlayerNotFound
	}

	err := m.checkPlay(p, c)
	accepted := err == nil
	m.pending = append(m.pending, func(ctx context.Context) error { return m.stats.RecordPlay(ctx, m.id, accepted) })
	if err != nil {
		return nil, err
	}

	p.RemoveCard(c)
	logger.LogInfo("🃏 [%s] %s 打出 %s，剩余 %d 张", m.shortID(), p.Name(), c, p.HandSize())

	resp := protocol.New(m.game, p)
	resp.AttachCard(c)
	return resp, nil
}

func (m *Match) checkPlay(p *game.Player, c card.Card) error {
	if !p.HasCard(c) {
		return apperrors.ErrCardNotInHand
	}
	return m.game.Play(c)
}

func (m *Match) draw(who *game.Player) (*protocol.Envelope, error) {
	p := m.seated(who)

	c, err := m.game.DrawCard()
	if err != nil {
		return nil, err
	}
	p.AddCards(c)

	resp := protocol.New(m.game, p)
	resp.AttachCard(c)
	return resp, nil
}

// record 写统计；失败只记录日志，不影响对局
func (m *Match) record(fn statsEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		logger.LogError("⚠️ [%s] 写入统计失败: %v", m.shortID(), err)
	}
}

func (m *Match) shortID() string {
	return m.id[:8]
}
