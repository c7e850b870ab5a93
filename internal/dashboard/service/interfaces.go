package service

import (
	"context"
	"time"

	"github.com/radieske/betting-admin-dashboard/internal/dashboard/model"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/repo"
	"github.com/radieske/betting-admin-dashboard/pkg/contracts/events"
)

// LedgerStore aplica ajustes atomicamente (transação + saldo)
type LedgerStore interface {
	ApplyAdjustment(ctx context.Context, t model.Transaction) (newBalance int64, err error)
}

// QueryStore reúne as leituras do dashboard
type QueryStore interface {
	ListUsersWithWager(ctx context.Context, q repo.UserListQuery) ([]model.UserWithWager, error)
	CountUsers(ctx context.Context) (int, error)
	CountActiveUsers(ctx context.Context, since time.Time) (int, error)
	GetUserDetail(ctx context.Context, userID string) (*model.UserDetail, error)
	UserExists(ctx context.Context, userID string) (bool, error)
	ListUserTransactions(ctx context.Context, userID string, limit, offset int) ([]model.Transaction, error)
	CountUserTransactions(ctx context.Context, userID string) (int, error)
	RecentBets(ctx context.Context, userID string, since time.Time) ([]model.Bet, error)
}

type EventPublisher interface {
	PublishBalanceAdjusted(ctx context.Context, e events.BalanceAdjusted) error
}

// AdjustmentObserver recebe o resultado de cada ajuste (métricas)
type AdjustmentObserver interface {
	ObserveAdjustment(adjType, outcome string)
}

type noopObserver struct{}

func (noopObserver) ObserveAdjustment(string, string) {}

type noopPublisher struct{}

func (noopPublisher) PublishBalanceAdjusted(context.Context, events.BalanceAdjusted) error { return nil }
