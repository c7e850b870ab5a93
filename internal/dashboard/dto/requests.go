package dto

// AdjustBalanceRequest é o corpo de POST /api/admin/adjust-user-balance
type AdjustBalanceRequest struct {
	UserID  string  `json:"userId"`
	Amount  int64   `json:"amount"` // centavos; negativo em débitos
	Type    string  `json:"type"`   // "credit" | "debit"
	Comment *string `json:"comment,omitempty"`
}
