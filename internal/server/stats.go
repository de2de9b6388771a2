package server

import (
	"context"

	"github.com/palemoky/uno/internal/storage"
)

// StatsRecorder 统计存储接口，由 storage.RedisStore 和 storage.NopStore 实现
type StatsRecorder interface {
	RecordMatchStarted(ctx context.Context, matchID string) error
	RecordJoin(ctx context.Context, matchID string) error
	RecordPlay(ctx context.Context, matchID string, accepted bool) error
	IncrOnline(ctx context.Context) error
	DecrOnline(ctx context.Context) error
	Stats(ctx context.Context) (*storage.Stats, error)
	MatchStats(ctx context.Context, matchID string) (*storage.MatchStats, error)
}

var (
	_ StatsRecorder = (*storage.RedisStore)(nil)
	_ StatsRecorder = storage.NopStore{}
)
