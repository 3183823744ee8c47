// CatalogHQ | 2026
// service.go

package product

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"

	"github.com/cataloghq/catalog-api/internal/core"
	"github.com/cataloghq/catalog-api/internal/storage"
)

type Service struct {
	repo  Repository
	store storage.ObjectStore
}

func NewService(repo Repository, store storage.ObjectStore) *Service {
	return &Service{repo: repo, store: store}
}

func (s *Service) List(ctx context.Context, categoryID string) ([]Response, error) {
	products, err := s.repo.List(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	return toResponseList(products, s.store), nil
}

func (s *Service) Get(ctx context.Context, id string) (*Response, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toResponse(product, s.store)
	return &resp, nil
}

// Create validates every field, including the category reference, before
// touching storage. A storage failure aborts the whole create so no
// record exists without its declared files.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Response, error) {
	v := core.NewValidationError()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		v.Add("name", "This field is required")
	} else if len(name) > 255 {
		v.Add("name", "Must be at most 255 characters")
	}

	if input.CategoryID == "" {
		v.Add("category_id", "This field is required")
	} else {
		exists, err := s.repo.CategoryExists(ctx, input.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			v.Add("category_id", "The selected category id is invalid")
		}
	}

	if input.Image != nil {
		if err := storage.ValidateImage(input.Image); err != nil {
			v.Add("image", err.Error())
		}
	}
	if input.CatalogPDF != nil {
		if err := storage.ValidateCatalog(input.CatalogPDF); err != nil {
			v.Add("catalog_pdf", err.Error())
		}
	}

	if err := v.OrNil(); err != nil {
		return nil, err
	}

	product := &Product{
		ID:          uuid.New().String(),
		CategoryID:  input.CategoryID,
		Name:        name,
		Description: input.Description,
	}

	var stored []string
	if input.Image != nil {
		path, err := s.putObject(ctx, storage.ProductImageDir, input.Image, stored)
		if err != nil {
			return nil, err
		}
		product.ImagePath = &path
		stored = append(stored, path)
	}
	if input.CatalogPDF != nil {
		path, err := s.putObject(ctx, storage.ProductCatalogDir, input.CatalogPDF, stored)
		if err != nil {
			return nil, err
		}
		product.CatalogPath = &path
		stored = append(stored, path)
	}

	if err := s.repo.Create(ctx, product); err != nil {
		for _, path := range stored {
			s.cleanupObject(ctx, &path)
		}
		return nil, err
	}

	resp := toResponse(product, s.store)
	return &resp, nil
}

// Update applies only the fields present in the input. Each replaced
// file field deletes the previous object before storing the new upload;
// an upload failure after that point leaves the record's path unchanged
// even though the old file is gone. That window is accepted, not
// retried.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Response, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v := core.NewValidationError()

	name := product.Name
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
		if name == "" {
			v.Add("name", "This field is required")
		} else if len(name) > 255 {
			v.Add("name", "Must be at most 255 characters")
		}
	}

	categoryID := product.CategoryID
	if input.CategoryID != nil {
		categoryID = *input.CategoryID
		if categoryID == "" {
			v.Add("category_id", "This field is required")
		} else if categoryID != product.CategoryID {
			exists, err := s.repo.CategoryExists(ctx, categoryID)
			if err != nil {
				return nil, err
			}
			if !exists {
				v.Add("category_id", "The selected category id is invalid")
			}
		}
	}

	if input.Image != nil {
		if err := storage.ValidateImage(input.Image); err != nil {
			v.Add("image", err.Error())
		}
	}
	if input.CatalogPDF != nil {
		if err := storage.ValidateCatalog(input.CatalogPDF); err != nil {
			v.Add("catalog_pdf", err.Error())
		}
	}

	if err := v.OrNil(); err != nil {
		return nil, err
	}

	product.Name = name
	product.CategoryID = categoryID
	if input.Description != nil {
		product.Description = input.Description
	}

	var replaced []string
	if input.Image != nil {
		s.cleanupObject(ctx, product.ImagePath)

		path, err := s.putObject(ctx, storage.ProductImageDir, input.Image, replaced)
		if err != nil {
			return nil, err
		}
		product.ImagePath = &path
		replaced = append(replaced, path)
	}
	if input.CatalogPDF != nil {
		s.cleanupObject(ctx, product.CatalogPath)

		path, err := s.putObject(ctx, storage.ProductCatalogDir, input.CatalogPDF, replaced)
		if err != nil {
			return nil, err
		}
		product.CatalogPath = &path
		replaced = append(replaced, path)
	}

	if err := s.repo.Update(ctx, product); err != nil {
		for _, path := range replaced {
			s.cleanupObject(ctx, &path)
		}
		return nil, err
	}

	resp := toResponse(product, s.store)
	return &resp, nil
}

// Delete removes the record first, then every attached file. File
// removal failures are logged and never block the delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cleanupObject(ctx, product.ImagePath)
	s.cleanupObject(ctx, product.CatalogPath)
	return nil
}

// putObject stores one upload, rolling back any objects already stored
// for the same request when it fails.
func (s *Service) putObject(
	ctx context.Context,
	dir string,
	file *multipart.FileHeader,
	storedSoFar []string,
) (string, error) {
	path, err := s.store.Put(ctx, dir, file)
	if err != nil {
		for _, prior := range storedSoFar {
			s.cleanupObject(ctx, &prior)
		}
		return "", fmt.Errorf("store product file: %w: %w", core.ErrStorage, err)
	}

	return path, nil
}

func (s *Service) cleanupObject(ctx context.Context, path *string) {
	if path == nil {
		return
	}

	exists, err := s.store.Exists(ctx, *path)
	if err != nil {
		slog.Warn("check stored object", "path", *path, "error", err)
		return
	}
	if !exists {
		return
	}

	if err := s.store.Delete(ctx, *path); err != nil {
		slog.Warn("delete stored object", "path", *path, "error", err)
	}
}
