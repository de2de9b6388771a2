package apperrors

import "errors"

// 错误码
const (
	ErrCodeUnknown           = 1000
	ErrCodeMissingSender     = 1001
	ErrCodeNoGame            = 2001
	ErrCodePlayerNotFound    = 2002
	ErrCodeInsufficientCards = 3001
	ErrCodeCardMismatch      = 3002
	ErrCodeCardNotInHand     = 3003
)

// GameError 游戏错误（可恢复，作为错误响应返回给对端）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrMissingSender     = &GameError{Code: ErrCodeMissingSender, Message: "message has no sender"}
	ErrNoGame            = &GameError{Code: ErrCodeNoGame, Message: "no game attached"}
	ErrPlayerNotFound    = &GameError{Code: ErrCodePlayerNotFound, Message: "player not found"}
	ErrInsufficientCards = &GameError{Code: ErrCodeInsufficientCards, Message: "not enough cards left in the deck"}
	ErrCardMismatch      = &GameError{Code: ErrCodeCardMismatch, Message: "card does not match the current card"}
	ErrCardNotInHand     = &GameError{Code: ErrCodeCardNotInHand, Message: "card is not in your hand"}
)

// IsGameplay 判断 err 是否为游戏错误
func IsGameplay(err error) bool {
	var ge *GameError
	return errors.As(err, &ge)
}

// Code 返回 err 的错误码，非游戏错误返回 ErrCodeUnknown
func Code(err error) int {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ErrCodeUnknown
}
