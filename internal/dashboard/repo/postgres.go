package repo

import (
	"database/sql"
	"errors"

	"github.com/radieske/betting-admin-dashboard/internal/dashboard/apperr"
)

// Postgres implementa as leituras e o ajuste de saldo sobre o Ledger Store
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

var (
	ErrInsufficientBalance = apperr.InvalidOperation("insufficient balance")
	ErrUserNotFound        = apperr.NotFound("user not found")
	ErrStaffNotFound       = apperr.NotFound("staff member not found")
)

// userColumns na ordem esperada por scanUser
const userColumns = `u.id, u.username, u."firstName", u."lastName", u.email, u.avatar,
	u."accountBalance", u."createdAt", u."lastLogin", u."lastBet", u."lastTransaction"`

type rowScanner interface {
	Scan(dest ...any) error
}

// storeErr mantém erros já classificados e embrulha o resto como falha de banco
func storeErr(op string, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Store(op, err)
}

// notFoundOr traduz sql.ErrNoRows para notFound
func notFoundOr(op string, err, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return apperr.Store(op, err)
}
