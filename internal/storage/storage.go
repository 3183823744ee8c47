// CatalogHQ | 2026
// storage.go

package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cataloghq/catalog-api/internal/config"
)

// Path prefixes for uploaded objects, per entity and field.
const (
	CategoryImageDir  = "categories"
	ProductImageDir   = "products/images"
	ProductCatalogDir = "products/catalogs"
)

// Upload size limits.
const (
	MaxImageSize   = 2 << 20  // 2 MiB
	MaxCatalogSize = 10 << 20 // 10 MiB
)

// ObjectStore is durable blob storage keyed by path. Put generates a
// collision-safe name under dir and returns the stored path; PublicURL
// expands a stored path to the client-facing absolute URL.
type ObjectStore interface {
	Put(ctx context.Context, dir string, file *multipart.FileHeader) (string, error)
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
	PublicURL(path string) string
}

// New selects the configured backend.
func New(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	switch cfg.Backend {
	case "s3":
		return NewS3Store(ctx, cfg)
	case "disk":
		return NewDiskStore(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

var imageExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// ValidateImage checks upload constraints for image fields. The returned
// error message is suitable for a field-keyed validation response.
func ValidateImage(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := imageExtensions[ext]; !ok {
		return fmt.Errorf("must be a file of type: jpeg, jpg, png, gif, webp")
	}

	if file.Size > MaxImageSize {
		return fmt.Errorf("must not be larger than 2 MB")
	}

	return nil
}

// ValidateCatalog checks upload constraints for catalog document fields.
func ValidateCatalog(file *multipart.FileHeader) error {
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return fmt.Errorf("must be a file of type: pdf")
	}

	if file.Size > MaxCatalogSize {
		return fmt.Errorf("must not be larger than 10 MB")
	}

	return nil
}

// objectPath builds a collision-safe stored path: dir/<uuid><ext>.
func objectPath(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return dir + "/" + uuid.New().String() + ext
}

func joinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
