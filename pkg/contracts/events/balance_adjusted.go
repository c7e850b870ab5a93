package events

// BalanceAdjusted é publicado depois que um ajuste manual de saldo é commitado.
type BalanceAdjusted struct {
	TransactionID   string  `json:"transactionId"`
	UserID          string  `json:"userId"`
	EmployeeID      string  `json:"employeeId"`
	Amount          int64   `json:"amount"`          // centavos, negativo em débitos
	TransactionType string  `json:"transactionType"` // "BONUS" | "MANUAL_DEBIT"
	BalanceAfter    int64   `json:"balanceAfter"`
	Comment         *string `json:"comment,omitempty"`
	TsUnixMs        int64   `json:"tsUnixMs"`
}
