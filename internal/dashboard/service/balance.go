package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/betting-admin-dashboard/internal/dashboard/apperr"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/cache"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/identity"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/model"
	"github.com/radieske/betting-admin-dashboard/pkg/contracts/events"
)

const MaxCommentLength = 500

// RevalidateDelay é o atraso da segunda invalidação do cache do usuário.
// Cobre um GetUser que leu o saldo antigo antes do commit e gravou no cache depois do primeiro Delete.
const RevalidateDelay = 500 * time.Millisecond

// AdjustRequest é um crédito ou débito manual feito pelo backoffice
type AdjustRequest struct {
	UserID  string
	Amount  int64 // centavos; positivo em créditos, negativo em débitos
	Type    model.AdjustmentType
	Comment *string
}

// BalanceService valida e aplica ajustes manuais de saldo
type BalanceService struct {
	log      *zap.Logger
	store    LedgerStore
	identity identity.Resolver
	cache    cache.Cache
	publ     EventPublisher
	obs      AdjustmentObserver
	now      func() time.Time

	revalidateDelay time.Duration // 0 desliga a segunda invalidação
}

func NewBalanceService(log *zap.Logger, store LedgerStore, id identity.Resolver, c cache.Cache, publ EventPublisher, obs AdjustmentObserver) *BalanceService {
	if c == nil {
		c = cache.Noop{}
	}
	if publ == nil {
		publ = noopPublisher{}
	}
	if obs == nil {
		obs = noopObserver{}
	}
	return &BalanceService{log: log, store: store, identity: id, cache: c, publ: publ, obs: obs, now: time.Now, revalidateDelay: RevalidateDelay}
}

// Adjust valida o pedido e grava a transação junto com o novo saldo.
// Falha com InvalidRequest (sinal errado, tipo ou userId inválido), NotFound
// (usuário inexistente) ou InvalidOperation (saldo ficaria negativo).
func (s *BalanceService) Adjust(ctx context.Context, req AdjustRequest) error {
	err := s.adjust(ctx, req)
	outcome := "applied"
	if err != nil {
		outcome = apperr.KindOf(err).String()
	}
	adjType := string(req.Type)
	if req.Type != model.AdjustmentCredit && req.Type != model.AdjustmentDebit {
		adjType = "unknown"
	}
	s.obs.ObserveAdjustment(adjType, outcome)
	return err
}

func (s *BalanceService) adjust(ctx context.Context, req AdjustRequest) error {
	if err := validate(&req); err != nil {
		return err
	}

	staff, err := s.identity.Current(ctx)
	if err != nil {
		return err
	}

	t := model.Transaction{
		ID:              uuid.NewString(),
		UserID:          req.UserID,
		Amount:          req.Amount,
		CreatedAt:       s.now().UTC(),
		TransactionType: req.Type.LedgerType(),
		EmployeeID:      &staff.ID,
		Comment:         req.Comment,
	}

	newBalance, err := s.store.ApplyAdjustment(ctx, t)
	if err != nil {
		return err
	}

	s.log.Info("balance adjusted",
		zap.String("userId", t.UserID),
		zap.String("employeeId", staff.ID),
		zap.String("type", t.TransactionType.String()),
		zap.Int64("amount", t.Amount),
		zap.Int64("balanceAfter", newBalance),
	)

	// a partir daqui o ajuste já está commitado; falhas só são logadas
	if err := s.cache.Delete(ctx, cache.UserKey(t.UserID)); err != nil {
		s.log.Warn("user cache invalidation failed", zap.String("userId", t.UserID), zap.Error(err))
	}
	s.scheduleRevalidate(t.UserID)

	if err := s.publ.PublishBalanceAdjusted(ctx, events.BalanceAdjusted{
		TransactionID:   t.ID,
		UserID:          t.UserID,
		EmployeeID:      staff.ID,
		Amount:          t.Amount,
		TransactionType: t.TransactionType.String(),
		BalanceAfter:    newBalance,
		Comment:         t.Comment,
		TsUnixMs:        t.CreatedAt.UnixMilli(),
	}); err != nil {
		s.log.Warn("publish balance_adjusted failed", zap.String("transactionId", t.ID), zap.Error(err))
	}

	return nil
}

// scheduleRevalidate apaga a chave do usuário de novo após revalidateDelay.
// Roda fora do ctx da request, que já terá terminado.
func (s *BalanceService) scheduleRevalidate(userID string) {
	if s.revalidateDelay <= 0 {
		return
	}
	time.AfterFunc(s.revalidateDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.cache.Delete(ctx, cache.UserKey(userID)); err != nil {
			s.log.Warn("delayed user cache invalidation failed", zap.String("userId", userID), zap.Error(err))
		}
	})
}

// validate confere tipo, sinal, userId e comentário antes de qualquer acesso ao banco
func validate(req *AdjustRequest) error {
	switch req.Type {
	case model.AdjustmentDebit:
		if req.Amount >= 0 {
			return apperr.InvalidRequest("Debit should be negative")
		}
	case model.AdjustmentCredit:
		if req.Amount <= 0 {
			return apperr.InvalidRequest("Credit should be positive")
		}
	default:
		return apperr.InvalidRequest(`type should be "credit" or "debit"`)
	}

	if _, err := uuid.Parse(req.UserID); err != nil {
		return apperr.InvalidRequest("userId should be a valid id")
	}

	if req.Comment != nil {
		c := strings.TrimSpace(*req.Comment)
		if c == "" {
			req.Comment = nil
			return nil
		}
		if utf8.RuneCountInString(c) > MaxCommentLength {
			return apperr.InvalidRequest("comment is too long")
		}
		req.Comment = &c
	}
	return nil
}
