package protocol

import (
	"github.com/palemoky/uno/internal/game"
	"github.com/palemoky/uno/internal/game/card"
)

// ResponseKind 响应状态
type ResponseKind int

const (
	ResponseSuccess ResponseKind = iota
	ResponseError
)

func (k ResponseKind) String() string {
	if k == ResponseSuccess {
		return "success"
	}
	return "error"
}

// Response 每条消息必带的响应状态
type Response struct {
	Kind ResponseKind
	Text *string
}

// Envelope 服务端与客户端之间交换的消息。
// 除 Response 外字段均可为空；消息类型由哪些字段被填充来区分，没有类型字段和版本号。
type Envelope struct {
	Game     *game.Game
	From     *game.Player
	Card     *card.Card
	Response Response
}

// New 创建一条成功消息，携带 g 和 from 的副本（nil 保持为 nil）
func New(g *game.Game, from *game.Player) *Envelope {
	e := &Envelope{Response: Response{Kind: ResponseSuccess}}
	if g != nil {
		e.Game = g.Clone()
	}
	if from != nil {
		e.From = from.Clone()
	}
	return e
}

// IsSuccess 成功时总是返回 (true, nil)，即使 Text 被填充；失败时返回错误文本
func (e *Envelope) IsSuccess() (bool, *string) {
	if e.Response.Kind == ResponseSuccess {
		return true, nil
	}
	return false, e.Response.Text
}

// SetError 将消息标记为失败，一旦设置无法清除
func (e *Envelope) SetError(text *string) {
	e.Response.Kind = ResponseError
	e.Response.Text = text
}

// SetErrorText 同 SetError，文本非空
func (e *Envelope) SetErrorText(text string) {
	e.SetError(&text)
}

// Fail 把游戏错误转为带内错误响应
func (e *Envelope) Fail(err error) {
	e.SetErrorText(err.Error())
}

// FindPlayer 在附带的游戏中按 id 查找 who，返回副本
func (e *Envelope) FindPlayer(who *game.Player) (game.Player, bool) {
	p := e.FindPlayerRef(who)
	if p == nil {
		return game.Player{}, false
	}
	return *p.Clone(), true
}

// FindPlayerRef 同 FindPlayer，但返回游戏玩家列表内的指针，可原地修改手牌
func (e *Envelope) FindPlayerRef(who *game.Player) *game.Player {
	if e.Game == nil || who == nil {
		return nil
	}
	return e.Game.PlayerByID(who.ID())
}

// AttachCard 附带一张牌（出的牌或摸到的牌）
func (e *Envelope) AttachCard(c card.Card) {
	e.Card = &c
}
