package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/radieske/betting-admin-dashboard/internal/dashboard/model"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/repo"
	"github.com/radieske/betting-admin-dashboard/pkg/contracts/events"
)

type mockLedgerStore struct {
	mock.Mock
}

func (m *mockLedgerStore) ApplyAdjustment(ctx context.Context, t model.Transaction) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

type mockQueryStore struct {
	mock.Mock
}

func (m *mockQueryStore) ListUsersWithWager(ctx context.Context, q repo.UserListQuery) ([]model.UserWithWager, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserWithWager), args.Error(1)
}

func (m *mockQueryStore) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockQueryStore) CountActiveUsers(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

func (m *mockQueryStore) GetUserDetail(ctx context.Context, userID string) (*model.UserDetail, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserDetail), args.Error(1)
}

func (m *mockQueryStore) UserExists(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockQueryStore) ListUserTransactions(ctx context.Context, userID string, limit, offset int) ([]model.Transaction, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *mockQueryStore) CountUserTransactions(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockQueryStore) RecentBets(ctx context.Context, userID string, since time.Time) ([]model.Bet, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bet), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishBalanceAdjusted(ctx context.Context, e events.BalanceAdjusted) error {
	return m.Called(ctx, e).Error(0)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Current(ctx context.Context) (*model.StaffMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StaffMember), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	args := m.Called(ctx, key, dst)
	return args.Bool(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	return m.Called(ctx, key, v, ttl).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

type recordingObserver struct {
	calls [][2]string
}

func (o *recordingObserver) ObserveAdjustment(adjType, outcome string) {
	o.calls = append(o.calls, [2]string{adjType, outcome})
}
