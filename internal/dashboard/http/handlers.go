package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/radieske/betting-admin-dashboard/internal/dashboard/apperr"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/dto"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/model"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/service"
)

const maxBodyBytes = 1 << 20

// listUsers lista usuários ativos nos últimos 30 dias com o total apostado
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := s.query.ListUsers(r.Context(), service.ListUsersParams{
		Page:      queryInt(q.Get("page"), 0),
		Limit:     queryInt(q.Get("limit"), service.DefaultUsersLimit),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// getUser retorna o usuário com totais de depósito e saque
func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.query.GetUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// listTransactions pagina o histórico de transações do usuário
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := s.query.ListUserTransactions(r.Context(), chi.URLParam(r, "userId"),
		queryInt(q.Get("page"), 0),
		queryInt(q.Get("limit"), service.DefaultTransactionsLimit),
	)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// recentBets retorna as apostas recentes do usuário, em ordem cronológica
func (s *Server) recentBets(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r.URL.Query().Get("daysLimit"), service.DefaultDaysLimit)
	bets, err := s.query.RecentBets(r.Context(), chi.URLParam(r, "userId"), days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if bets == nil {
		bets = []model.Bet{}
	}
	writeJSON(w, http.StatusOK, bets)
}

// loggedIn retorna o funcionário considerado logado
func (s *Server) loggedIn(w http.ResponseWriter, r *http.Request) {
	staff, err := s.query.LoggedInStaff(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, staff)
}

// adjustBalance aplica um crédito ou débito manual; 204 em caso de sucesso
func (s *Server) adjustBalance(w http.ResponseWriter, r *http.Request) {
	var req dto.AdjustBalanceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	err := s.balance.Adjust(r.Context(), service.AdjustRequest{
		UserID:  req.UserID,
		Amount:  req.Amount,
		Type:    model.AdjustmentType(req.Type),
		Comment: req.Comment,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError traduz a classe do erro em status HTTP.
// Falhas de banco/infra não vazam detalhes: o corpo é genérico e o erro vai pro log.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindInvalidRequest, apperr.KindInvalidOperation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("requestId", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeJSON(w, status, dto.ErrorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, dto.ErrorResponse{Error: apperr.Message(err)})
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// queryInt lê um inteiro não negativo; ausente ou inválido vira def
func queryInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
