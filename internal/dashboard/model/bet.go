package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// o dashboard consome multiplier como número JSON
	decimal.MarshalJSONWithoutQuotes = true
}

// BetStatus segue os códigos gravados na coluna status.
type BetStatus int

const (
	BetWin     BetStatus = 1
	BetLoss    BetStatus = 2
	BetPending BetStatus = 3
)

// Bet é uma aposta em slot, imutável depois de criada.
type Bet struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	SlotGameID  string          `json:"slotGameId"`
	WagerAmount int64           `json:"wagerAmount"`
	Multiplier  decimal.Decimal `json:"multiplier"`
	Status      BetStatus       `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// SlotGame é dado de referência estático.
type SlotGame struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
