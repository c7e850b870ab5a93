package topics

const (
	// Ledger
	BalanceAdjusted = "balance_adjusted"
)
