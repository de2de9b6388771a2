package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/palemoky/uno/internal/config"
	"github.com/palemoky/uno/internal/game"
	"github.com/palemoky/uno/internal/storage"
	"github.com/palemoky/uno/internal/transport"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源，生产环境需要限制
	},
}

// Server 对局服务器：TCP 原始帧 + HTTP（/ws /health /stats）
type Server struct {
	config *config.Config
	stats  StatsRecorder
	match  *Match

	listener   net.Listener
	httpServer *http.Server
	httpLn     net.Listener

	// 连接控制
	rateLimiter    *RateLimiter
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数

	connsMu sync.Mutex
	conns   map[*transport.Conn]struct{}
	closing bool // Shutdown 已开始，受 connsMu 保护
	wg      sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer 创建服务器实例，stats 为 nil 时不记录统计
func NewServer(cfg *config.Config, stats StatsRecorder) (*Server, error) {
	if stats == nil {
		stats = storage.NopStore{}
	}

	opts := []game.Option{game.WithHandSize(cfg.Game.HandSize)}
	if cfg.Game.Seed != 0 {
		opts = append(opts, game.WithSeed(cfg.Game.Seed))
	}
	m, err := NewMatch(stats, opts...)
	if err != nil {
		return nil, fmt.Errorf("创建对局失败: %w", err)
	}

	s := &Server{
		config:         cfg,
		stats:          stats,
		match:          m,
		rateLimiter: NewRateLimiter(
			cfg.Security.MaxConnPerSecond,
			cfg.Security.MaxConnPerMinute,
			cfg.Security.BanDurationTime(),
		),
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
		conns:          make(map[*transport.Conn]struct{}),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.httpServer = &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
	}

	log.Printf("🎲 对局 %s 已创建，当前牌: %s", m.ID(), m.Snapshot().CurrentCard())
	return s, nil
}

// Match 当前对局
func (s *Server) Match() *Match {
	return s.match
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWebSocket).Methods(http.MethodGet)
	return r
}

// Start 绑定端口并在后台开始服务；ctx 取消后所有连接循环退出
func (s *Server) Start(ctx context.Context) error {
	s.cancel()
	s.ctx, s.cancel = context.WithCancel(ctx)

	var lc net.ListenConfig
	tcpAddr := net.JoinHostPort(s.config.Server.Host, fmt.Sprint(s.config.Server.Port))
	ln, err := lc.Listen(s.ctx, "tcp", tcpAddr)
	if err != nil {
		return fmt.Errorf("监听 %s 失败: %w", tcpAddr, err)
	}

	httpAddr := net.JoinHostPort(s.config.Server.Host, fmt.Sprint(s.config.Server.HTTPPort))
	httpLn, err := lc.Listen(s.ctx, "tcp", httpAddr)
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("监听 %s 失败: %w", httpAddr, err)
	}

	s.listener = ln
	s.httpLn = httpLn

	go s.rateLimiter.Run(s.ctx)
	go s.monitorStats(s.ctx, monitorInterval)

	s.wg.Add(1)
	go s.acceptLoop()

	go func() {
		if err := s.httpServer.Serve(httpLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("HTTP 服务异常退出: %v", err)
		}
	}()

	log.Printf("🚀 服务器启动: tcp://%s, ws://%s/ws (最大连接数: %d)", ln.Addr(), httpLn.Addr(), s.maxConnections)
	return nil
}

// Addr TCP 监听地址
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// HTTPAddr HTTP 监听地址
func (s *Server) HTTPAddr() net.Addr {
	return s.httpLn.Addr()
}
