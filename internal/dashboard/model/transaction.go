package model

import "time"

// TransactionType segue os códigos gravados na coluna "transactionType".
type TransactionType int

const (
	TransactionDeposit     TransactionType = 1
	TransactionWithdraw    TransactionType = 2
	TransactionBonus       TransactionType = 3
	TransactionManualDebit TransactionType = 4
)

func (t TransactionType) String() string {
	switch t {
	case TransactionDeposit:
		return "DEPOSIT"
	case TransactionWithdraw:
		return "WITHDRAW"
	case TransactionBonus:
		return "BONUS"
	case TransactionManualDebit:
		return "MANUAL_DEBIT"
	default:
		return "UNKNOWN"
	}
}

// Transaction é uma entrada imutável do ledger.
type Transaction struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Amount          int64           `json:"amount"`
	CreatedAt       time.Time       `json:"createdAt"`
	TransactionType TransactionType `json:"transactionType"`
	EmployeeID      *string         `json:"employeeId"`
	Comment         *string         `json:"comment"`
}

// AdjustmentType é o tipo de ajuste manual pedido pelo backoffice.
type AdjustmentType string

const (
	AdjustmentCredit AdjustmentType = "credit"
	AdjustmentDebit  AdjustmentType = "debit"
)

// LedgerType mapeia o ajuste para o tipo gravado no ledger.
func (a AdjustmentType) LedgerType() TransactionType {
	if a == AdjustmentCredit {
		return TransactionBonus
	}
	return TransactionManualDebit
}
