package transport

import (
	"bufio"
	"context"
	"io"
	"net"
	"time"

	"github.com/palemoky/uno/internal/protocol"
)

const dialTimeout = 10 * time.Second

type deadliner interface {
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

type remoteAddresser interface {
	RemoteAddr() net.Addr
}

// Conn 一条承载 Envelope 的连接。
// 同一时刻只有一个请求/响应在途；bufio.Reader 在整个连接生命周期内复用，
// 以免预读的下一帧字节丢失。
type Conn struct {
	rwc        io.ReadWriteCloser
	r          *bufio.Reader
	maxPayload int
}

// NewConn 包装一个字节流
func NewConn(rwc io.ReadWriteCloser) *Conn {
	return &Conn{
		rwc:        rwc,
		r:          bufio.NewReader(rwc),
		maxPayload: protocol.DefaultMaxPayload,
	}
}

// SetMaxPayload 修改可接受的最大负载长度
func (c *Conn) SetMaxPayload(n int) {
	if n > 0 {
		c.maxPayload = n
	}
}

// Dial 通过 TCP 连接服务器
func Dial(ctx context.Context, addr string) (*Conn, error) {
	d := net.Dialer{Timeout: dialTimeout}
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewConn(nc), nil
}

// Send 发送一条消息，返回负载字节数
func (c *Conn) Send(e *protocol.Envelope) (int, error) {
	return e.Write(c.rwc)
}

// Receive 读取一条消息
func (c *Conn) Receive() (*protocol.Envelope, error) {
	return protocol.ReadLimit(c.r, c.maxPayload)
}

// RoundTrip 发送请求并等待响应
func (c *Conn) RoundTrip(req *protocol.Envelope) (*protocol.Envelope, error) {
	if _, err := c.Send(req); err != nil {
		return nil, err
	}
	return c.Receive()
}

// SetReadDeadline 底层流支持时设置读超时
func (c *Conn) SetReadDeadline(t time.Time) error {
	if d, ok := c.rwc.(deadliner); ok {
		return d.SetReadDeadline(t)
	}
	return nil
}

// SetWriteDeadline 底层流支持时设置写超时
func (c *Conn) SetWriteDeadline(t time.Time) error {
	if d, ok := c.rwc.(deadliner); ok {
		return d.SetWriteDeadline(t)
	}
	return nil
}

// RemoteAddr 对端地址，未知时返回空字符串
func (c *Conn) RemoteAddr() string {
	if ra, ok := c.rwc.(remoteAddresser); ok && ra.RemoteAddr() != nil {
		return ra.RemoteAddr().String()
	}
	return ""
}

// Close 关闭连接
func (c *Conn) Close() error {
	return c.rwc.Close()
}
