package server

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"
)

const monitorInterval = 30 * time.Second

// monitorStats 定期输出服务器状态，直到 ctx 取消
func (s *Server) monitorStats(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Print(s.statusLine())
		}
	}
}

// statusLine 当前连接、对局和内存概况
func (s *Server) statusLine() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	g := s.match.Snapshot()
	return fmt.Sprintf("📊 [监控] 连接: %d/%d | 玩家: %d | 牌堆: %d | 当前牌: %s | Goroutines: %d | 内存: %.2f MB",
		s.OnlineCount(),
		s.maxConnections,
		g.PlayerCount(),
		g.DeckLen(),
		g.CurrentCard(),
		runtime.NumGoroutine(),
		float64(m.Alloc)/1024/1024)
}

// Shutdown 停止接受新连接，关闭现有连接并等待连接协程退出
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	httpErr := s.httpServer.Shutdown(ctx)

	// 拒绝新连接并关闭所有客户端连接
	s.connsMu.Lock()
	s.closing = true
	for c := range s.conns {
		_ = c.Close()
	}
	s.connsMu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("✅ 服务器已关闭")
		return httpErr
	case <-ctx.Done():
		return ctx.Err()
	}
}
