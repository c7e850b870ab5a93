package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/betting-admin-dashboard/internal/dashboard/cache"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/dto"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/identity"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/model"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/repo"
	"github.com/radieske/betting-admin-dashboard/internal/shared/config"
)

// Defaults de paginação e janelas
const (
	DefaultUsersLimit        = 3
	DefaultTransactionsLimit = 20
	MaxPageLimit             = 100

	DefaultSortOrder = "desc"

	ActivityWindowDays = 30
	DefaultDaysLimit   = 30
	MaxDaysLimit       = 365
)

// ListUsersParams chega do handler já com os defaults aplicados
type ListUsersParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// QueryService atende as leituras do dashboard
type QueryService struct {
	log       *zap.Logger
	store     QueryStore
	identity  identity.Resolver
	cache     cache.Cache
	cacheTTL  time.Duration
	totalMode string
	now       func() time.Time
}

func NewQueryService(log *zap.Logger, store QueryStore, id identity.Resolver, c cache.Cache, cacheTTL time.Duration, totalMode string) *QueryService {
	if c == nil {
		c = cache.Noop{}
	}
	return &QueryService{
		log:       log,
		store:     store,
		identity:  id,
		cache:     c,
		cacheTTL:  cacheTTL,
		totalMode: totalMode,
		now:       time.Now,
	}
}

// ListUsers lista usuários com apostas nos últimos 30 dias e o total apostado no período.
// O total segue totalMode: todos os usuários (padrão) ou só os ativos na janela.
func (s *QueryService) ListUsers(ctx context.Context, p ListUsersParams) (*dto.UserPage, error) {
	page, limit := normalizePage(p.Page, p.Limit, DefaultUsersLimit)
	sortBy := p.SortBy
	if !repo.IsSortable(sortBy) {
		sortBy = repo.DefaultSortBy
	}
	sortOrder := p.SortOrder
	if sortOrder != "asc" {
		sortOrder = DefaultSortOrder
	}
	since := s.now().AddDate(0, 0, -ActivityWindowDays)

	total, err := s.countUsers(ctx, since)
	if err != nil {
		return nil, err
	}

	users, err := s.store.ListUsersWithWager(ctx, repo.UserListQuery{
		Since:     since,
		Limit:     limit,
		Offset:    page * limit,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	})
	if err != nil {
		return nil, err
	}

	return &dto.UserPage{
		Users:    users,
		PageInfo: dto.NewPageInfo(page, limit, len(users), total),
	}, nil
}

func (s *QueryService) countUsers(ctx context.Context, since time.Time) (int, error) {
	if s.totalMode == config.UsersTotalActive {
		return s.store.CountActiveUsers(ctx, since)
	}
	return s.store.CountUsers(ctx)
}

// GetUser retorna o usuário com totais de depósito/saque, passando pelo cache
func (s *QueryService) GetUser(ctx context.Context, userID string) (*model.UserDetail, error) {
	if !validID(userID) {
		return nil, repo.ErrUserNotFound
	}

	key := cache.UserKey(userID)
	var cached model.UserDetail
	if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.log.Warn("user cache get failed", zap.String("userId", userID), zap.Error(err))
	} else if ok {
		return &cached, nil
	}

	u, err := s.store.GetUserDetail(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, u, s.cacheTTL); err != nil {
		s.log.Warn("user cache set failed", zap.String("userId", userID), zap.Error(err))
	}
	return u, nil
}

// ListUserTransactions pagina o histórico do usuário, mais recentes primeiro
func (s *QueryService) ListUserTransactions(ctx context.Context, userID string, page, limit int) (*dto.TransactionPage, error) {
	if !validID(userID) {
		return nil, repo.ErrUserNotFound
	}
	page, limit = normalizePage(page, limit, DefaultTransactionsLimit)

	total, err := s.store.CountUserTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		if err := s.ensureUser(ctx, userID); err != nil {
			return nil, err
		}
	}

	txs, err := s.store.ListUserTransactions(ctx, userID, limit, page*limit)
	if err != nil {
		return nil, err
	}

	return &dto.TransactionPage{
		Transactions: txs,
		PageInfo:     dto.NewPageInfo(page, limit, len(txs), total),
	}, nil
}

// RecentBets retorna as apostas dos últimos daysLimit dias
func (s *QueryService) RecentBets(ctx context.Context, userID string, daysLimit int) ([]model.Bet, error) {
	if !validID(userID) {
		return nil, repo.ErrUserNotFound
	}
	if daysLimit <= 0 {
		daysLimit = DefaultDaysLimit
	}
	if daysLimit > MaxDaysLimit {
		daysLimit = MaxDaysLimit
	}

	bets, err := s.store.RecentBets(ctx, userID, s.now().AddDate(0, 0, -daysLimit))
	if err != nil {
		return nil, err
	}
	if len(bets) == 0 {
		if err := s.ensureUser(ctx, userID); err != nil {
			return nil, err
		}
	}
	return bets, nil
}

// LoggedInStaff retorna o funcionário considerado logado
func (s *QueryService) LoggedInStaff(ctx context.Context) (*model.StaffMember, error) {
	return s.identity.Current(ctx)
}

// ensureUser distingue "usuário sem dados" de "usuário inexistente"
func (s *QueryService) ensureUser(ctx context.Context, userID string) error {
	ok, err := s.store.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return repo.ErrUserNotFound
	}
	return nil
}

// normalizePage aplica os defaults e limita page para que page*limit+limit caiba num int
func normalizePage(page, limit, defLimit int) (int, int) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = defLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if maxPage := math.MaxInt/limit - 1; page > maxPage {
		page = maxPage
	}
	return page, limit
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
