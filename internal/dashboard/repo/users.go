package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/radieske/betting-admin-dashboard/internal/dashboard/model"
)

// sortColumns mapeia o sortBy aceito pela API para a expressão SQL.
// Nada fora deste mapa chega ao ORDER BY.
var sortColumns = map[string]string{
	"username":         `u.username`,
	"firstName":        `u."firstName"`,
	"lastName":         `u."lastName"`,
	"email":            `u.email`,
	"accountBalance":   `u."accountBalance"`,
	"totalWagerAmount": `"totalWagerAmount"`,
	"lastLogin":        `u."lastLogin"`,
	"lastBet":          `u."lastBet"`,
	"lastTransaction":  `u."lastTransaction"`,
	"createdAt":        `u."createdAt"`,
}

const DefaultSortBy = "createdAt"

// IsSortable informa se a coluna pode ser usada na ordenação
func IsSortable(sortBy string) bool {
	_, ok := sortColumns[sortBy]
	return ok
}

// UserListQuery parametriza a listagem com agregação de apostas
type UserListQuery struct {
	Since     time.Time // início da janela de atividade
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string // "asc" | "desc"
}

func orderClause(sortBy, sortOrder string) string {
	col, ok := sortColumns[sortBy]
	if !ok {
		col = sortColumns[DefaultSortBy]
	}
	dir := "DESC"
	if sortOrder == "asc" {
		dir = "ASC"
	}
	return fmt.Sprintf("%s %s NULLS LAST, u.id %s", col, dir, dir)
}

// ListUsersWithWager retorna os usuários com apostas desde q.Since e o total apostado na janela.
// Usuários sem apostas na janela ficam de fora (INNER JOIN).
func (p *Postgres) ListUsersWithWager(ctx context.Context, q UserListQuery) ([]model.UserWithWager, error) {
	query := `
		SELECT ` + userColumns + `,
			SUM(b."wagerAmount")::BIGINT AS "totalWagerAmount"
		FROM users u
		INNER JOIN bets b ON u.id = b."userId"
		WHERE b."createdAt" >= $1
		GROUP BY u.id
		ORDER BY ` + orderClause(q.SortBy, q.SortOrder) + `
		LIMIT $2 OFFSET $3`

	rows, err := p.db.QueryContext(ctx, query, q.Since, q.Limit, q.Offset)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	defer rows.Close()

	out := make([]model.UserWithWager, 0, q.Limit)
	for rows.Next() {
		var u model.UserWithWager
		if err := scanUser(rows, &u.User, &u.TotalWagerAmount); err != nil {
			return nil, storeErr("scan user", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list users", err)
	}
	return out, nil
}

// CountUsers conta todos os usuários cadastrados
func (p *Postgres) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, storeErr("count users", err)
	}
	return n, nil
}

// CountActiveUsers conta os usuários com ao menos uma aposta desde since
func (p *Postgres) CountActiveUsers(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT "userId") FROM bets WHERE "createdAt" >= $1`, since).Scan(&n)
	if err != nil {
		return 0, storeErr("count active users", err)
	}
	return n, nil
}

// GetUserDetail retorna o usuário com os totais de depósito e saque.
// LEFT JOIN: usuário sem transações volta com totais zerados.
func (p *Postgres) GetUserDetail(ctx context.Context, userID string) (*model.UserDetail, error) {
	query := `
		SELECT ` + userColumns + `,
			COALESCE(SUM(CASE WHEN t."transactionType" = $2 THEN t.amount ELSE 0 END), 0)::BIGINT AS "depositAmount",
			COALESCE(SUM(CASE WHEN t."transactionType" = $3 THEN t.amount ELSE 0 END), 0)::BIGINT AS "withdrawAmount"
		FROM users u
		LEFT JOIN transactions t ON u.id = t."userId"
		WHERE u.id = $1
		GROUP BY u.id`

	var d model.UserDetail
	err := scanUser(
		p.db.QueryRowContext(ctx, query, userID, model.TransactionDeposit, model.TransactionWithdraw),
		&d.User, &d.DepositAmount, &d.WithdrawAmount,
	)
	if err != nil {
		return nil, notFoundOr("get user", err, ErrUserNotFound)
	}
	return &d, nil
}

// UserExists verifica a existência do usuário sem carregar a linha
func (p *Postgres) UserExists(ctx context.Context, userID string) (bool, error) {
	var ok bool
	err := p.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&ok)
	if err != nil {
		return false, storeErr("user exists", err)
	}
	return ok, nil
}

// scanUser lê as colunas de userColumns seguidas de extras
func scanUser(s rowScanner, u *model.User, extra ...any) error {
	dest := []any{
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.Avatar,
		&u.AccountBalance, &u.CreatedAt, &u.LastLogin, &u.LastBet, &u.LastTransaction,
	}
	return s.Scan(append(dest, extra...)...)
}
