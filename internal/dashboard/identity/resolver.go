// Package identity resolve quem é o funcionário logado.
//
// Ainda não existe autenticação: FirstStaffResolver trata o funcionário mais antigo
// como o logado. Uma implementação real de Resolver substitui esta sem tocar nos serviços.
package identity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/betting-admin-dashboard/internal/dashboard/cache"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/model"
)

type Resolver interface {
	Current(ctx context.Context) (*model.StaffMember, error)
}

// StaffSource lê o funcionário mais antigo do Ledger Store
type StaffSource interface {
	EarliestStaff(ctx context.Context) (*model.StaffMember, error)
}

type FirstStaffResolver struct {
	log   *zap.Logger
	src   StaffSource
	cache cache.Cache
	ttl   time.Duration
}

func NewFirstStaffResolver(log *zap.Logger, src StaffSource, c cache.Cache, ttl time.Duration) *FirstStaffResolver {
	if c == nil {
		c = cache.Noop{}
	}
	return &FirstStaffResolver{log: log, src: src, cache: c, ttl: ttl}
}

func (r *FirstStaffResolver) Current(ctx context.Context) (*model.StaffMember, error) {
	var cached model.StaffMember
	if ok, err := r.cache.Get(ctx, cache.StaffKey(), &cached); err != nil {
		r.log.Warn("staff cache get failed", zap.Error(err))
	} else if ok {
		return &cached, nil
	}

	staff, err := r.src.EarliestStaff(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cache.StaffKey(), staff, r.ttl); err != nil {
		r.log.Warn("staff cache set failed", zap.Error(err))
	}
	return staff, nil
}
