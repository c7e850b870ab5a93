package repo

import (
	"context"
	"database/sql"

	"github.com/radieske/betting-admin-dashboard/internal/dashboard/model"
	"github.com/radieske/betting-admin-dashboard/internal/shared/db"
)

// ListUserTransactions retorna as transações do usuário, mais recentes primeiro
func (p *Postgres) ListUserTransactions(ctx context.Context, userID string, limit, offset int) ([]model.Transaction, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, "userId", amount, "createdAt", "transactionType", "employeeId", comment
		FROM transactions
		WHERE "userId" = $1
		ORDER BY "createdAt" DESC, id DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, storeErr("list transactions", err)
	}
	defer rows.Close()

	out := make([]model.Transaction, 0, limit)
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.CreatedAt, &t.TransactionType, &t.EmployeeID, &t.Comment); err != nil {
			return nil, storeErr("scan transaction", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list transactions", err)
	}
	return out, nil
}

// CountUserTransactions conta as transações do usuário
func (p *Postgres) CountUserTransactions(ctx context.Context, userID string) (int, error) {
	var n int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE "userId" = $1`, userID).Scan(&n); err != nil {
		return 0, storeErr("count transactions", err)
	}
	return n, nil
}

// ApplyAdjustment grava a transação e o novo saldo numa única transação de banco.
// A linha do usuário fica travada (FOR UPDATE) entre a leitura do saldo e o update,
// então ajustes concorrentes no mesmo usuário são serializados.
// Retorna o saldo final.
func (p *Postgres) ApplyAdjustment(ctx context.Context, t model.Transaction) (int64, error) {
	var newBalance int64

	err := db.WithTx(ctx, p.db, func(tx *sql.Tx) error {
		var balance int64
		err := tx.QueryRowContext(ctx,
			`SELECT "accountBalance" FROM users WHERE id = $1 FOR UPDATE`, t.UserID).Scan(&balance)
		if err != nil {
			return notFoundOr("lock user", err, ErrUserNotFound)
		}

		newBalance = balance + t.Amount
		if newBalance < 0 {
			return ErrInsufficientBalance
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (id, "userId", amount, "createdAt", "transactionType", "employeeId", comment)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			t.ID, t.UserID, t.Amount, t.CreatedAt, t.TransactionType, t.EmployeeID, t.Comment); err != nil {
			return storeErr("insert transaction", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET "accountBalance" = $1, "lastTransaction" = $2 WHERE id = $3`,
			newBalance, t.CreatedAt, t.UserID); err != nil {
			return storeErr("update balance", err)
		}
		return nil
	})
	if err != nil {
		return 0, storeErr("apply adjustment", err)
	}
	return newBalance, nil
}

