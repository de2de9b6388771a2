package transport

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const closeWait = time.Second

// WSStream adapts a websocket connection to a byte stream. Every Write is sent
// as one binary message; Read streams across message boundaries, so the
// length-prefixed framing works exactly as it does over TCP.
type WSStream struct {
	conn   *websocket.Conn
	reader io.Reader

	writeMu sync.Mutex
	closed  bool
}

// NewWSStream wraps an established websocket connection.
func NewWSStream(conn *websocket.Conn) *WSStream {
	return &WSStream{conn: conn}
}

// DialWebSocket connects to a ws:// or wss:// URL.
func DialWebSocket(ctx context.Context, url string) (*Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: dialTimeout,
	}
	ws, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return NewConn(NewWSStream(ws)), nil
}

func (s *WSStream) Read(p []byte) (int, error) {
	for {
		if s.reader == nil {
			mt, r, err := s.conn.NextReader()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return 0, io.EOF
				}
				return 0, err
			}
			if mt != websocket.BinaryMessage {
				continue
			}
			s.reader = r
		}

		n, err := s.reader.Read(p)
		if errors.Is(err, io.EOF) {
			s.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (s *WSStream) Write(p []byte) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close sends a normal close frame and closes the underlying connection.
func (s *WSStream) Close() error {
	s.writeMu.Lock()
	if !s.closed {
		s.closed = true
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWait))
	}
	s.writeMu.Unlock()
	return s.conn.Close()
}

func (s *WSStream) SetReadDeadline(t time.Time) error {
	return s.conn.SetReadDeadline(t)
}

func (s *WSStream) SetWriteDeadline(t time.Time) error {
	return s.conn.SetWriteDeadline(t)
}

func (s *WSStream) RemoteAddr() net.Addr {
	return s.conn.RemoteAddr()
}
