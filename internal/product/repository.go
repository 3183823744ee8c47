// CatalogHQ | 2026
// repository.go

package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cataloghq/catalog-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, categoryID string) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
	CategoryExists(ctx context.Context, categoryID string) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, product *Product) error {
	query := `
		INSERT INTO products (id, category_id, name, description, image_path, catalog_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, product, query,
		product.ID,
		product.CategoryID,
		product.Name,
		product.Description,
		product.ImagePath,
		product.CatalogPath,
	)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	query := `
		SELECT id, category_id, name, description, image_path, catalog_path,
		       created_at, updated_at
		FROM products
		WHERE id = $1`

	var product Product
	err := r.db.GetContext(ctx, &product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &product, nil
}

// List returns products in insertion order, optionally restricted to one
// category. Pass "" for no filter.
func (r *repository) List(ctx context.Context, categoryID string) ([]Product, error) {
	query := `
		SELECT id, category_id, name, description, image_path, catalog_path,
		       created_at, updated_at
		FROM products
		WHERE $1 = '' OR category_id::text = $1
		ORDER BY created_at, id`

	var products []Product
	if err := r.db.SelectContext(ctx, &products, query, categoryID); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

func (r *repository) Update(ctx context.Context, product *Product) error {
	query := `
		UPDATE products
		SET category_id = $2, name = $3, description = $4,
		    image_path = $5, catalog_path = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, product, query,
		product.ID,
		product.CategoryID,
		product.Name,
		product.Description,
		product.ImagePath,
		product.CatalogPath,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update product: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete product: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CategoryExists(ctx context.Context, categoryID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id::text = $1)`, categoryID)
	if err != nil {
		return false, fmt.Errorf("category exists: %w", err)
	}

	return exists, nil
}
