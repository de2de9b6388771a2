package storage

import "context"

// NopStore 不落地的统计存储，Redis 未启用时使用
type NopStore struct{}

func (NopStore) RecordMatchStarted(context.Context, string) error { return nil }
func (NopStore) RecordJoin(context.Context, string) error         { return nil }
func (NopStore) RecordPlay(context.Context, string, bool) error   { return nil }
func (NopStore) IncrOnline(context.Context) error                 { return nil }
func (NopStore) DecrOnline(context.Context) error                 { return nil }

func (NopStore) Stats(context.Context) (*Stats, error) {
	return &Stats{}, nil
}

func (NopStore) MatchStats(context.Context, string) (*MatchStats, error) {
	return nil, nil
}
