// CatalogHQ | 2026
// disk.go

package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/cataloghq/catalog-api/internal/config"
)

// DiskStore keeps objects on the local file system, for development and
// single-node deployments.
type DiskStore struct {
	root    string
	baseURL string
}

func NewDiskStore(cfg config.StorageConfig) (*DiskStore, error) {
	root, err := filepath.Abs(cfg.DiskRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	return &DiskStore{
		root:    root,
		baseURL: cfg.PublicBaseURL,
	}, nil
}

func (s *DiskStore) Put(
	ctx context.Context,
	dir string,
	file *multipart.FileHeader,
) (string, error) {
	path := objectPath(dir, file.Filename)

	fullPath, err := s.resolve(path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create object file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(fullPath) //nolint:errcheck // cleanup on failed write
		return "", fmt.Errorf("write object file: %w", err)
	}

	return path, nil
}

func (s *DiskStore) Exists(ctx context.Context, path string) (bool, error) {
	fullPath, err := s.resolve(path)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(fullPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat object: %w", err)
	}

	return true, nil
}

func (s *DiskStore) Delete(ctx context.Context, path string) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	return nil
}

func (s *DiskStore) PublicURL(path string) string {
	return joinURL(s.baseURL, path)
}

// resolve maps a stored path onto the root, rejecting traversal outside it.
func (s *DiskStore) resolve(path string) (string, error) {
	fullPath := filepath.Join(s.root, filepath.FromSlash(path))
	if !strings.HasPrefix(fullPath, s.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return fullPath, nil
}

var _ ObjectStore = (*DiskStore)(nil)
