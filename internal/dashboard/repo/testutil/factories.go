package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/radieske/betting-admin-dashboard/internal/dashboard/model"
)

// InsertUser grava um usuário com o saldo informado
func InsertUser(t *testing.T, db *sql.DB, username string, balance int64, createdAt time.Time) model.User {
	t.Helper()
	u := model.User{
		ID:             uuid.NewString(),
		Username:       username,
		FirstName:      "First " + username,
		LastName:       "Last " + username,
		Email:          fmt.Sprintf("%s@example.com", username),
		Avatar:         "https://example.com/" + username + ".png",
		AccountBalance: balance,
		CreatedAt:      createdAt.UTC().Truncate(time.Microsecond),
	}
	_, err := db.ExecContext(context.Background(), `
		INSERT INTO users (id, username, "firstName", "lastName", email, avatar, "accountBalance", "createdAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Username, u.FirstName, u.LastName, u.Email, u.Avatar, u.AccountBalance, u.CreatedAt)
	require.NoError(t, err)
	return u
}

func InsertStaff(t *testing.T, db *sql.DB, firstName string, createdAt time.Time) model.StaffMember {
	t.Helper()
	s := model.StaffMember{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  "Staff",
		Email:     firstName + "@backoffice.example.com",
		Avatar:    "https://example.com/staff.png",
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}
	_, err := db.ExecContext(context.Background(), `
		INSERT INTO staff (id, "firstName", "lastName", email, avatar, "createdAt")
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.FirstName, s.LastName, s.Email, s.Avatar, s.CreatedAt)
	require.NoError(t, err)
	return s
}

func InsertSlotGame(t *testing.T, db *sql.DB, name string) model.SlotGame {
	t.Helper()
	g := model.SlotGame{ID: uuid.NewString(), Name: name}
	_, err := db.ExecContext(context.Background(), `INSERT INTO "slotGames" (id, name) VALUES ($1, $2)`, g.ID, g.Name)
	require.NoError(t, err)
	return g
}

func InsertBet(t *testing.T, db *sql.DB, userID, slotGameID string, wager int64, multiplier string, status model.BetStatus, createdAt time.Time) model.Bet {
	t.Helper()
	b := model.Bet{
		ID:          uuid.NewString(),
		UserID:      userID,
		SlotGameID:  slotGameID,
		WagerAmount: wager,
		Multiplier:  decimal.RequireFromString(multiplier),
		Status:      status,
		CreatedAt:   createdAt.UTC().Truncate(time.Microsecond),
	}
	_, err := db.ExecContext(context.Background(), `
		INSERT INTO bets (id, "userId", "slotGameId", "wagerAmount", multiplier, status, "createdAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.UserID, b.SlotGameID, b.WagerAmount, b.Multiplier, b.Status, b.CreatedAt)
	require.NoError(t, err)
	return b
}

// InsertTransaction grava uma transação sem mexer no saldo do usuário
func InsertTransaction(t *testing.T, db *sql.DB, userID string, amount int64, typ model.TransactionType, createdAt time.Time) model.Transaction {
	t.Helper()
	tr := model.Transaction{
		ID:              uuid.NewString(),
		UserID:          userID,
		Amount:          amount,
		CreatedAt:       createdAt.UTC().Truncate(time.Microsecond),
		TransactionType: typ,
	}
	_, err := db.ExecContext(context.Background(), `
		INSERT INTO transactions (id, "userId", amount, "createdAt", "transactionType")
		VALUES ($1, $2, $3, $4, $5)`,
		tr.ID, tr.UserID, tr.Amount, tr.CreatedAt, tr.TransactionType)
	require.NoError(t, err)
	return tr
}

// Balance lê o saldo atual direto do banco
func Balance(t *testing.T, db *sql.DB, userID string) int64 {
	t.Helper()
	var b int64
	require.NoError(t, db.QueryRowContext(context.Background(),
		`SELECT "accountBalance" FROM users WHERE id = $1`, userID).Scan(&b))
	return b
}

// CountTransactions conta as transações do usuário por tipo
func CountTransactions(t *testing.T, db *sql.DB, userID string, typ model.TransactionType) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM transactions WHERE "userId" = $1 AND "transactionType" = $2`, userID, typ).Scan(&n))
	return n
}
