// CatalogHQ | 2026
// entity.go

package product

import (
	"time"
)

type Product struct {
	ID          string    `db:"id"`
	CategoryID  string    `db:"category_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	ImagePath   *string   `db:"image_path"`
	CatalogPath *string   `db:"catalog_path"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
