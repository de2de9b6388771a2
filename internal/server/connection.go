package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/palemoky/uno/internal/logger"
	"github.com/palemoky/uno/internal/protocol"
	"github.com/palemoky/uno/internal/storage"
	"github.com/palemoky/uno/internal/transport"
)

var (
	errServerClosing = errors.New("服务器正在关闭")
	errServerFull    = errors.New("达到最大连接数限制")
)

// acceptLoop 接受 TCP 连接
func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		nc, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			logger.LogError("接受连接失败: %v", err)
			continue
		}

		if ip := hostOf(nc.RemoteAddr().String()); !s.admit(ip) {
			logger.LogInfo("🚫 IP %s 连接过于频繁", ip)
			_ = nc.Close()
			continue
		}

		if err := s.acquire(); err != nil {
			logger.LogInfo("🚫 拒绝连接 %s: %v (上限 %d)", nc.RemoteAddr(), err, s.maxConnections)
			_ = nc.Close()
			continue
		}

		go func() {
			defer s.release()
			s.serveConn(transport.NewConn(nc))
		}()
	}
}

// handleWebSocket 升级为 WebSocket 后走同一套消息循环
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	clientIP := GetClientIP(r)
	if !s.admit(clientIP) {
		logger.LogInfo("🚫 IP %s 请求过于频繁", clientIP)
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}

	// 升级前占用槽位，Shutdown 等待期间不会再有新的连接登记
	if err := s.acquire(); err != nil {
		logger.LogInfo("🚫 拒绝 WebSocket 连接 %s: %v (上限 %d)", clientIP, err, s.maxConnections)
		http.Error(w, "Server Unavailable", http.StatusServiceUnavailable)
		return
	}
	defer s.release()

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.LogError("WebSocket 升级失败: %v", err)
		return
	}
	s.serveConn(transport.NewConn(transport.NewWSStream(ws)))
}

// admit 连接准入：已封禁的 IP 只走读锁，其余交给 Allow 计数
func (s *Server) admit(ip string) bool {
	return !s.rateLimiter.IsBanned(ip) && s.rateLimiter.Allow(ip)
}

// acquire 占用一个连接槽位并登记到 wg，由 release 归还；关闭后或满员时返回错误
func (s *Server) acquire() error {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()

	if s.closing || s.ctx.Err() != nil {
		return errServerClosing
	}
	select {
	case s.semaphore <- struct{}{}:
	default:
		return errServerFull
	}
	s.wg.Add(1)
	return nil
}

func (s *Server) release() {
	<-s.semaphore
	s.wg.Done()
}

// serveConn 单连接的 读取 -> 处理 -> 响应 循环；任何致命错误都关闭连接
func (s *Server) serveConn(c *transport.Conn) {
	addr := c.RemoteAddr()
	c.SetMaxPayload(s.config.Game.MaxPayload)

	s.track(c)
	defer s.untrack(c)

	s.record(func(ctx context.Context) error { return s.stats.IncrOnline(ctx) })
	defer s.record(func(ctx context.Context) error { return s.stats.DecrOnline(ctx) })

	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			logger.LogError("💥 连接 %s 处理崩溃，已断开", addr)
		}
	}()

	logger.LogInfo("✅ 连接建立: %s", addr)
	err := transport.Serve(s.ctx, c, s.config.Server.IdleTimeoutDuration(), s.match.Handle)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		logger.LogInfo("❌ 连接断开: %s", addr)
	case protocol.IsFatal(err):
		logger.LogError("❌ 连接 %s 协议错误，已断开: %v", addr, err)
	default:
		logger.LogError("❌ 连接 %s 异常断开: %v", addr, err)
	}
}

func (s *Server) track(c *transport.Conn) {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	s.conns[c] = struct{}{}
}

func (s *Server) untrack(c *transport.Conn) {
	s.connsMu.Lock()
	delete(s.conns, c)
	s.connsMu.Unlock()
	_ = c.Close()
}

// OnlineCount 当前连接数
func (s *Server) OnlineCount() int {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	return len(s.conns)
}

func (s *Server) record(fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		logger.LogError("⚠️ 写入统计失败: %v", err)
	}
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// statsResponse /stats 返回内容
type statsResponse struct {
	MatchID     string `json:"match_id"`
	Players     int    `json:"players"`
	DeckLeft    int    `json:"deck_left"`
	CurrentCard string `json:"current_card"`
	Connections int    `json:"connections"`

	MatchesStarted int64 `json:"matches_started"`
	Joins          int64 `json:"joins"`
	PlaysAccepted  int64 `json:"plays_accepted"`
	PlaysRejected  int64 `json:"plays_rejected"`
	Online         int64 `json:"online"`

	// 当前对局的统计，未启用 Redis 或读取失败时省略
	Match *storage.MatchStats `json:"match,omitempty"`
}

// handleStats 返回当前对局和累计统计
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.Stats(r.Context())
	if err != nil {
		logger.LogError("获取统计失败: %v", err)
		http.Error(w, "获取统计失败", http.StatusInternalServerError)
		return
	}

	matchStats, err := s.stats.MatchStats(r.Context(), s.match.ID())
	if err != nil {
		logger.LogError("获取对局统计失败: %v", err)
		matchStats = nil
	}

	g := s.match.Snapshot()
	resp := statsResponse{
		MatchID:        s.match.ID(),
		Players:        g.PlayerCount(),
		DeckLeft:       g.DeckLen(),
		CurrentCard:    g.CurrentCard().String(),
		Connections:    s.OnlineCount(),
		MatchesStarted: stats.MatchesStarted,
		Joins:          stats.Joins,
		PlaysAccepted:  stats.PlaysAccepted,
		PlaysRejected:  stats.PlaysRejected,
		Online:         stats.Online,
		Match:          matchStats,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.LogError("写入统计响应失败: %v", err)
	}
}
