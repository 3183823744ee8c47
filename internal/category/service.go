// CatalogHQ | 2026
// service.go

package category

import (
	"context"
	"fmt"
	"log/slog"
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

func (s *Service) List(ctx context.Context) ([]Response, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return toResponseList(categories, s.store), nil
}

func (s *Service) Get(ctx context.Context, id string) (*Response, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toResponse(category, s.store)
	return &resp, nil
}

// Create validates every field before touching storage, so a rejected
// request leaves no uploaded file behind.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Response, error) {
	v := core.NewValidationError()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		v.Add("name", "This field is required")
	} else if len(name) > 255 {
		v.Add("name", "Must be at most 255 characters")
	} else {
		taken, err := s.repo.ExistsByName(ctx, name, "")
		if err != nil {
			return nil, err
		}
		if taken {
			v.Add("name", "The name has already been taken")
		}
	}

	if input.Image != nil {
		if err := storage.ValidateImage(input.Image); err != nil {
			v.Add("image", err.Error())
		}
	}

	if err := v.OrNil(); err != nil {
		return nil, err
	}

	category := &Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: input.Description,
	}

	if input.Image != nil {
		path, err := s.store.Put(ctx, storage.CategoryImageDir, input.Image)
		if err != nil {
			return nil, fmt.Errorf("store category image: %w: %w", core.ErrStorage, err)
		}
		category.ImagePath = &path
	}

	if err := s.repo.Create(ctx, category); err != nil {
		s.cleanupObject(ctx, category.ImagePath)
		return nil, err
	}

	resp := toResponse(category, s.store)
	return &resp, nil
}

// Update applies only the fields present in the input. Replacing the
// image deletes the previous file before storing the new upload; if the
// new upload then fails, the record keeps its old path even though the
// old file is already gone. That window is accepted, not retried.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Response, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v := core.NewValidationError()

	name := category.Name
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
		if name == "" {
			v.Add("name", "This field is required")
		} else if len(name) > 255 {
			v.Add("name", "Must be at most 255 characters")
		} else if name != category.Name {
			taken, err := s.repo.ExistsByName(ctx, name, id)
			if err != nil {
				return nil, err
			}
			if taken {
				v.Add("name", "The name has already been taken")
			}
		}
	}

	if input.Image != nil {
		if err := storage.ValidateImage(input.Image); err != nil {
			v.Add("image", err.Error())
		}
	}

	if err := v.OrNil(); err != nil {
		return nil, err
	}

	category.Name = name
	if input.Description != nil {
		category.Description = input.Description
	}

	if input.Image != nil {
		s.cleanupObject(ctx, category.ImagePath)

		path, err := s.store.Put(ctx, storage.CategoryImageDir, input.Image)
		if err != nil {
			return nil, fmt.Errorf("store category image: %w: %w", core.ErrStorage, err)
		}
		category.ImagePath = &path
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if input.Image != nil {
			s.cleanupObject(ctx, category.ImagePath)
		}
		return nil, err
	}

	resp := toResponse(category, s.store)
	return &resp, nil
}

// Delete removes the record first, then its attachment. A failed file
// removal is logged but never surfaces, the record is already gone.
func (s *Service) Delete(ctx context.Context, id string) error {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cleanupObject(ctx, category.ImagePath)
	return nil
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
