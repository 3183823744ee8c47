// CatalogHQ | 2026
// repository.go

package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cataloghq/catalog-api/internal/core"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*Record, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// GetByUserID loads the staff record and its role set. It runs on every
// staff-gated request; role changes take effect immediately.
func (r *repository) GetByUserID(
	ctx context.Context,
	userID string,
) (*Record, error) {
	query := `
		SELECT id, user_id, created_at
		FROM staff_records
		WHERE user_id = $1`

	var record Record
	err := r.db.GetContext(ctx, &record, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get staff record: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get staff record: %w", err)
	}

	rolesQuery := `
		SELECT role
		FROM staff_roles
		WHERE staff_record_id = $1
		ORDER BY role`

	if err := r.db.SelectContext(ctx, &record.Roles, rolesQuery, record.ID); err != nil {
		return nil, fmt.Errorf("get staff roles: %w", err)
	}

	return &record, nil
}
