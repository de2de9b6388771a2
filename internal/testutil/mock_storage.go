//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/uno/internal/storage"
)

// MockStatsRecorder 统计存储 mock
type MockStatsRecorder struct {
	mock.Mock
}

func (m *MockStatsRecorder) RecordMatchStarted(ctx context.Context, matchID string) error {
	args := m.Called(ctx, matchID)
	return args.Error(0)
}

func (m *MockStatsRecorder) RecordJoin(ctx context.Context, matchID string) error {
	args := m.Called(ctx, matchID)
	return args.Error(0)
}

func (m *MockStatsRecorder) RecordPlay(ctx context.Context, matchID string, accepted bool) error {
	args := m.Called(ctx, matchID, accepted)
	return args.Error(0)
}

func (m *MockStatsRecorder) IncrOnline(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatsRecorder) DecrOnline(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatsRecorder) Stats(ctx context.Context) (*storage.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Stats), args.Error(1)
}

func (m *MockStatsRecorder) MatchStats(ctx context.Context, matchID string) (*storage.MatchStats, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.MatchStats), args.Error(1)
}
