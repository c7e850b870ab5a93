package repo

import (
	"context"

	"github.com/radieske/betting-admin-dashboard/internal/dashboard/model"
)

// EarliestStaff retorna o funcionário mais antigo
func (p *Postgres) EarliestStaff(ctx context.Context) (*model.StaffMember, error) {
	var s model.StaffMember
	err := p.db.QueryRowContext(ctx, `
		SELECT id, "firstName", "lastName", email, avatar, "createdAt"
		FROM staff
		ORDER BY "createdAt" ASC, id ASC
		LIMIT 1`).Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Avatar, &s.CreatedAt)
	if err != nil {
		return nil, notFoundOr("earliest staff", err, ErrStaffNotFound)
	}
	return &s, nil
}
