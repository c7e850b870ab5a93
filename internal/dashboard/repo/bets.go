package repo

import (
	"context"
	"time"

	"github.com/radieske/betting-admin-dashboard/internal/dashboard/model"
)

// RecentBets retorna as apostas do usuário feitas desde since, em ordem cronológica
func (p *Postgres) RecentBets(ctx context.Context, userID string, since time.Time) ([]model.Bet, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, "userId", "slotGameId", "wagerAmount", multiplier, status, "createdAt"
		FROM bets
		WHERE "userId" = $1 AND "createdAt" >= $2
		ORDER BY "createdAt"`, userID, since)
	if err != nil {
		return nil, storeErr("recent bets", err)
	}
	defer rows.Close()

	out := make([]model.Bet, 0)
	for rows.Next() {
		var b model.Bet
		if err := rows.Scan(&b.ID, &b.UserID, &b.SlotGameID, &b.WagerAmount, &b.Multiplier, &b.Status, &b.CreatedAt); err != nil {
			return nil, storeErr("scan bet", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("recent bets", err)
	}
	return out, nil
}
