package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/radieske/betting-admin-dashboard/internal/dashboard/dto"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/model"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/service"
)

// BalanceAdjuster aplica ajustes manuais de saldo
type BalanceAdjuster interface {
	Adjust(ctx context.Context, req service.AdjustRequest) error
}

// Queries define as leituras expostas pela API
type Queries interface {
	ListUsers(ctx context.Context, p service.ListUsersParams) (*dto.UserPage, error)
	GetUser(ctx context.Context, userID string) (*model.UserDetail, error)
	ListUserTransactions(ctx context.Context, userID string, page, limit int) (*dto.TransactionPage, error)
	RecentBets(ctx context.Context, userID string, daysLimit int) ([]model.Bet, error)
	LoggedInStaff(ctx context.Context) (*model.StaffMember, error)
}

// RequestObserver recebe a observação de cada request (métricas)
type RequestObserver interface {
	ObserveRequest(method, route string, code int, elapsed time.Duration)
}

// Server expõe a API REST do dashboard
type Server struct {
	log     *zap.Logger
	balance BalanceAdjuster
	query   Queries
	obs     RequestObserver
	timeout time.Duration
}

// NewServer instancia o servidor HTTP; obs pode ser nil
func NewServer(log *zap.Logger, balance BalanceAdjuster, query Queries, obs RequestObserver) *Server {
	return &Server{log: log, balance: balance, query: query, obs: obs, timeout: 15 * time.Second}
}

// Router retorna o roteador chi com middlewares e rotas da API
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(withCORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/users", s.listUsers)                              // ?page&limit&sortBy&sortOrder
		r.Get("/users/{userId}", s.getUser)                       // usuário + depósitos/saques
		r.Get("/users/{userId}/transactions", s.listTransactions) // ?page&limit
		r.Get("/users/{userId}/recent-bets", s.recentBets)        // ?daysLimit
		r.Get("/admin/logged-in", s.loggedIn)                     // funcionário atual
		r.Post("/admin/adjust-user-balance", s.adjustBalance)     // crédito/débito manual
	})

	return r
}
