package transport

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/palemoky/uno/internal/protocol"
)

// Handler 处理一条请求并返回响应
type Handler func(req *protocol.Envelope) *protocol.Envelope

// Serve 在连接上循环执行 读请求 -> 处理 -> 写响应，直到对端关闭或出现致命错误。
// 对端正常关闭时返回 nil；其余错误都意味着该连接不可再用，调用方应关闭它。
func Serve(ctx context.Context, c *Conn, idle time.Duration, h Handler) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if idle > 0 {
			_ = c.SetReadDeadline(time.Now().Add(idle))
		}
		req, err := c.Receive()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		resp := h(req)
		if resp == nil {
			continue
		}
		if idle > 0 {
			_ = c.SetWriteDeadline(time.Now().Add(idle))
		}
		if _, err := c.Send(resp); err != nil {
			return err
		}
	}
}
