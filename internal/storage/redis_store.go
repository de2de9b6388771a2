package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	keyPrefix      = "uno:"
	statsKey       = keyPrefix + "stats"
	onlineKey      = keyPrefix + "online"
	matchKeyPrefix = keyPrefix + "match:"

	// 对局统计过期时间
	matchExpiration = 2 * time.Hour
)

// 统计字段
const (
	fieldMatches       = "matches"
	fieldJoins         = "joins"
	fieldPlaysAccepted = "plays_accepted"
	fieldPlaysRejected = "plays_rejected"
	fieldStartedAt     = "started_at"
)

// Stats 全局统计
type Stats struct {
	MatchesStarted int64 `json:"matches_started"`
	Joins          int64 `json:"joins"`
	PlaysAccepted  int64 `json:"plays_accepted"`
	PlaysRejected  int64 `json:"plays_rejected"`
	Online         int64 `json:"online"`
}

// MatchStats 单局统计
type MatchStats struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	Joins         int64     `json:"joins"`
	PlaysAccepted int64     `json:"plays_accepted"`
	PlaysRejected int64     `json:"plays_rejected"`
}

// RedisStore Redis 统计存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ping 检查 Redis 连通性
func (rs *RedisStore) Ping(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}

// RecordMatchStarted 记录新对局
func (rs *RedisStore) RecordMatchStarted(ctx context.Context, matchID string) error {
	key := matchKeyPrefix + matchID
	pipe := rs.client.TxPipeline()
	pipe.HIncrBy(ctx, statsKey, fieldMatches, 1)
	pipe.HSet(ctx, key, fieldStartedAt, time.Now().Unix())
	pipe.Expire(ctx, key, matchExpiration)
	_, err := pipe.Exec(ctx)
	return err
}

// RecordJoin 记录玩家入座
func (rs *RedisStore) RecordJoin(ctx context.Context, matchID string) error {
	return rs.incrMatch(ctx, matchID, fieldJoins)
}

// RecordPlay 记录一次出牌，accepted 表示是否被接受
func (rs *RedisStore) RecordPlay(ctx context.Context, matchID string, accepted bool) error {
	field := fieldPlaysRejected
	if accepted {
		field = fieldPlaysAccepted
	}
	return rs.incrMatch(ctx, matchID, field)
}

func (rs *RedisStore) incrMatch(ctx context.Context, matchID, field string) error {
	key := matchKeyPrefix + matchID
	pipe := rs.client.TxPipeline()
	pipe.HIncrBy(ctx, statsKey, field, 1)
	pipe.HIncrBy(ctx, key, field, 1)
	pipe.Expire(ctx, key, matchExpiration)
	_, err := pipe.Exec(ctx)
	return err
}

// IncrOnline 在线连接数 +1
func (rs *RedisStore) IncrOnline(ctx context.Context) error {
	return rs.client.Incr(ctx, onlineKey).Err()
}

// DecrOnline 在线连接数 -1
func (rs *RedisStore) DecrOnline(ctx context.Context) error {
	return rs.client.Decr(ctx, onlineKey).Err()
}

// Stats 获取全局统计
func (rs *RedisStore) Stats(ctx context.Context) (*Stats, error) {
	pipe := rs.client.Pipeline()
	fields := pipe.HGetAll(ctx, statsKey)
	online := pipe.Get(ctx, onlineKey)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	data := fields.Val()
	stats := &Stats{
		MatchesStarted: parseInt(data[fieldMatches]),
		Joins:          parseInt(data[fieldJoins]),
		PlaysAccepted:  parseInt(data[fieldPlaysAccepted]),
		PlaysRejected:  parseInt(data[fieldPlaysRejected]),
	}
	if n, err := online.Int64(); err == nil {
		stats.Online = n
	}
	return stats, nil
}

// MatchStats 获取单局统计，对局不存在或已过期时返回 nil
func (rs *RedisStore) MatchStats(ctx context.Context, matchID string) (*MatchStats, error) {
	data, err := rs.client.HGetAll(ctx, matchKeyPrefix+matchID).Result()
	if err != nil {
		return nil, fmt.Errorf("读取对局统计失败: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	return &MatchStats{
		ID:            matchID,
		StartedAt:     time.Unix(parseInt(data[fieldStartedAt]), 0),
		Joins:         parseInt(data[fieldJoins]),
		PlaysAccepted: parseInt(data[fieldPlaysAccepted]),
		PlaysRejected: parseInt(data[fieldPlaysRejected]),
	}, nil
}

func parseInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
