// CatalogHQ | 2026
// disk_test.go

package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cataloghq/catalog-api/internal/config"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()

	store, err := NewDiskStore(config.StorageConfig{
		Backend:       "disk",
		DiskRoot:      t.TempDir(),
		PublicBaseURL: "http://localhost:8080/storage",
	})
	require.NoError(t, err)
	return store
}

func newFileHeader(t *testing.T, filename string, size int) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte("x"), size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func TestDiskStore_PutExistsDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	path, err := store.Put(ctx, CategoryImageDir, newFileHeader(t, "logo.png", 128))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, CategoryImageDir+"/"))
	assert.Equal(t, ".png", filepath.Ext(path))

	exists, err := store.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := os.ReadFile(filepath.Join(store.root, filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Len(t, data, 128)

	require.NoError(t, store.Delete(ctx, path))

	exists, err = store.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDiskStore_PutGeneratesUniquePaths(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Put(ctx, ProductImageDir, newFileHeader(t, "photo.jpg", 16))
	require.NoError(t, err)

	second, err := store.Put(ctx, ProductImageDir, newFileHeader(t, "photo.jpg", 16))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDiskStore_RejectsTraversal(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Exists(ctx, "../outside.txt")
	assert.Error(t, err)

	err = store.Delete(ctx, "../../etc/passwd")
	assert.Error(t, err)
}

func TestDiskStore_PublicURL(t *testing.T) {
	store := newTestStore(t)

	url := store.PublicURL("categories/abc.png")
	assert.Equal(t, "http://localhost:8080/storage/categories/abc.png", url)
}

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int
		wantErr  string
	}{
		{name: "png ok", filename: "a.png", size: 100},
		{name: "uppercase ext ok", filename: "a.JPG", size: 100},
		{name: "webp ok", filename: "a.webp", size: 100},
		{
			name:     "pdf rejected",
			filename: "a.pdf",
			size:     100,
			wantErr:  "must be a file of type: jpeg, jpg, png, gif, webp",
		},
		{
			name:     "no extension rejected",
			filename: "noext",
			size:     100,
			wantErr:  "must be a file of type: jpeg, jpg, png, gif, webp",
		},
		{
			name:     "too large",
			filename: "a.png",
			size:     MaxImageSize + 1,
			wantErr:  "must not be larger than 2 MB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := &multipart.FileHeader{
				Filename: tt.filename,
				Size:     int64(tt.size),
			}

			err := ValidateImage(header)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCatalog(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int
		wantErr  string
	}{
		{name: "pdf ok", filename: "catalog.pdf", size: 100},
		{
			name:     "image rejected",
			filename: "catalog.png",
			size:     100,
			wantErr:  "must be a file of type: pdf",
		},
		{
			name:     "too large",
			filename: "catalog.pdf",
			size:     MaxCatalogSize + 1,
			wantErr:  "must not be larger than 10 MB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := &multipart.FileHeader{
				Filename: tt.filename,
				Size:     int64(tt.size),
			}

			err := ValidateCatalog(header)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
