package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/uno/internal/config"
	"github.com/palemoky/uno/internal/logger"
	"github.com/palemoky/uno/internal/server"
	"github.com/palemoky/uno/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	logFile := flag.Bool("logfile", false, "日志写入 ~/.uno/debug.log")
	flag.Parse()

	if *logFile {
		if err := logger.Init(); err != nil {
			log.Fatalf("初始化日志失败: %v", err)
		}
		defer logger.Close()
		fmt.Fprintf(os.Stderr, "日志写入 %s\n", logger.GetLogPath())
	}

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}

	stats, closeStats, err := newStats(cfg)
	if err != nil {
		log.Fatalf("连接 Redis 失败: %v", err)
	}
	defer closeStats()

	// 创建服务器
	srv, err := server.NewServer(cfg, stats)
	if err != nil {
		log.Fatalf("创建服务器失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 启动服务器
	log.Println("🎮 UNO 服务器启动中...")
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}

	// 优雅关闭
	<-ctx.Done()
	log.Println("正在关闭服务器...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("关闭服务器出错: %v", err)
	}
}

// newStats 根据配置选择 Redis 统计或空实现
func newStats(cfg *config.Config) (server.StatsRecorder, func(), error) {
	if !cfg.Redis.Enabled {
		return storage.NopStore{}, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	store := storage.NewRedisStore(rdb)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("%s: %w", cfg.Redis.Addr, err)
	}

	log.Printf("📦 统计写入 Redis %s", cfg.Redis.Addr)
	return store, func() { _ = rdb.Close() }, nil
}
