//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/hanabi-deduction/internal/game/state"
)

// MockSnapshotStore 快照存储 mock
type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) SaveGame(ctx context.Context, gameID string, snap *state.Snapshot) error {
	args := m.Called(ctx, gameID, snap)
	return args.Error(0)
}

func (m *MockSnapshotStore) LoadGame(ctx context.Context, gameID string) (*state.Snapshot, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*state.Snapshot), args.Error(1)
}

func (m *MockSnapshotStore) DeleteGame(ctx context.Context, gameID string) error {
	args := m.Called(ctx, gameID)
	return args.Error(0)
}

func (m *MockSnapshotStore) ListGames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
