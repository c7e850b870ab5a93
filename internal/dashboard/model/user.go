package model

import "time"

// User é o jogador como persistido em users.
type User struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Email           string     `json:"email"`
	Avatar          string     `json:"avatar"`
	AccountBalance  int64      `json:"accountBalance"` // centavos
	CreatedAt       time.Time  `json:"createdAt"`
	LastLogin       *time.Time `json:"lastLogin"`
	LastBet         *time.Time `json:"lastBet"`
	LastTransaction *time.Time `json:"lastTransaction"`
}

// UserWithWager é a linha da listagem de usuários, com o total apostado na janela de atividade.
type UserWithWager struct {
	User
	TotalWagerAmount int64 `json:"totalWagerAmount"`
}

// UserDetail agrega os totais de depósito e saque do usuário.
// WithdrawAmount é sempre <= 0 (saques são gravados negativos no ledger).
type UserDetail struct {
	User
	DepositAmount  int64 `json:"depositAmount"`
	WithdrawAmount int64 `json:"withdrawAmount"`
}
