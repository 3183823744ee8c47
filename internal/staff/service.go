// CatalogHQ | 2026
// service.go

package staff

import (
	"context"

	"github.com/cataloghq/catalog-api/internal/middleware"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RolesForUser backs the RequireStaff middleware. It propagates
// core.ErrNotFound for non-staff users so the chain can reject with 403.
func (s *Service) RolesForUser(
	ctx context.Context,
	userID string,
) ([]string, error) {
	record, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return record.Roles, nil
}

var _ middleware.StaffResolver = (*Service)(nil)
