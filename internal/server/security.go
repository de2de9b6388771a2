package server

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/palemoky/uno/internal/logger"
)

// RateLimiter 连接准入：按 IP 统计建连次数，超过每秒或每分钟上限后封禁一段时间
type RateLimiter struct {
	mu      sync.RWMutex
	clients map[string]*connWindow

	perSecond       int           // 每秒最多建连次数
	perMinute       int           // 每分钟最多建连次数
	banDuration     time.Duration // 超限后的封禁时长
	cleanupInterval time.Duration
	now             func() time.Time
}

// connWindow 单个 IP 的建连计数窗口
type connWindow struct {
	secondStart time.Time
	minuteStart time.Time
	inSecond    int
	inMinute    int
	bannedUntil time.Time
}

// roll 窗口到期后重新计数
func (w *connWindow) roll(now time.Time) {
	if now.Sub(w.secondStart) >= time.Second {
		w.secondStart, w.inSecond = now, 0
	}
	if now.Sub(w.minuteStart) >= time.Minute {
		w.minuteStart, w.inMinute = now, 0
	}
}

func (w *connWindow) banned(now time.Time) bool {
	return now.Before(w.bannedUntil)
}

// NewRateLimiter 创建连接准入器；清理协程需调用 Run 启动
func NewRateLimiter(perSecond, perMinute int, banDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		clients:         make(map[string]*connWindow),
		perSecond:       perSecond,
		perMinute:       perMinute,
		banDuration:     banDuration,
		cleanupInterval: 5 * time.Minute,
		now:             time.Now,
	}
}

// Allow 登记一次来自 ip 的建连。封禁中或本次超限时返回 false，超限同时开始封禁
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.clients[ip]
	if !ok {
		w = &connWindow{secondStart: now, minuteStart: now}
		rl.clients[ip] = w
	}
	if w.banned(now) {
		return false
	}

	w.roll(now)
	w.inSecond++
	w.inMinute++
	if w.inSecond <= rl.perSecond && w.inMinute <= rl.perMinute {
		return true
	}

	w.bannedUntil = now.Add(rl.banDuration)
	logger.LogInfo("⚠️ IP %s 建连过于频繁，封禁 %v", ip, rl.banDuration)
	return false
}

// IsBanned 只读检查 ip 是否处于封禁期，不计入建连次数
func (rl *RateLimiter) IsBanned(ip string) bool {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	w, ok := rl.clients[ip]
	return ok && w.banned(rl.now())
}

// Run 定期清理过期记录，直到 ctx 取消
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for ip, w := range rl.clients {
		// 10 分钟内没有建连且未封禁的记录可以丢弃
		if now.Sub(w.minuteStart) > 10*time.Minute && !w.banned(now) {
			delete(rl.clients, ip)
		}
	}
}

// --- 辅助函数 ---

// GetClientIP 获取 HTTP 客户端真实 IP
func GetClientIP(r *http.Request) string {
	// 检查代理头
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// 取第一个 IP（最原始的客户端）
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return hostOf(r.RemoteAddr)
}

// hostOf 去掉地址中的端口
func hostOf(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
