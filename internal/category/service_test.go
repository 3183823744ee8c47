// CatalogHQ | 2026
// service_test.go

package category

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cataloghq/catalog-api/internal/core"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, category *Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context) ([]Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Category), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, category *Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Put(ctx context.Context, dir string, file *multipart.FileHeader) (string, error) {
	args := m.Called(ctx, dir, file)
	return args.String(0), args.Error(1)
}

func (m *mockStore) Exists(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *mockStore) PublicURL(path string) string {
	return m.Called(path).String(0)
}

func imageHeader(filename string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: filename, Size: size}
}

func strPtr(s string) *string {
	return &s
}

func TestService_Create_WithoutImage(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	repo.On("ExistsByName", mock.Anything, "Tools", "").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Category) bool {
		return c.Name == "Tools" && c.ImagePath == nil && c.ID != ""
	})).Return(nil)

	resp, err := svc.Create(context.Background(), CreateInput{Name: "Tools"})

	require.NoError(t, err)
	assert.Equal(t, "Tools", resp.Name)
	assert.Nil(t, resp.ImageURL)
	repo.AssertExpectations(t)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Create_DuplicateName(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	repo.On("ExistsByName", mock.Anything, "Tools", "").Return(true, nil)

	_, err := svc.Create(context.Background(), CreateInput{
		Name:  "Tools",
		Image: imageHeader("logo.png", 100),
	})

	ve, ok := core.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"The name has already been taken"}, ve.Fields["name"])
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_InvalidImage(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	repo.On("ExistsByName", mock.Anything, "Tools", "").Return(false, nil)

	_, err := svc.Create(context.Background(), CreateInput{
		Name:  "Tools",
		Image: imageHeader("malware.exe", 100),
	})

	ve, ok := core.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields["image"][0], "must be a file of type")
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Create_WithImage(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	image := imageHeader("logo.png", 100)

	repo.On("ExistsByName", mock.Anything, "Tools", "").Return(false, nil)
	store.On("Put", mock.Anything, "categories", image).
		Return("categories/abc.png", nil)
	store.On("PublicURL", "categories/abc.png").
		Return("http://assets/categories/abc.png")
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Category) bool {
		return c.ImagePath != nil && *c.ImagePath == "categories/abc.png"
	})).Return(nil)

	resp, err := svc.Create(context.Background(), CreateInput{
		Name:  "Tools",
		Image: image,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.ImageURL)
	assert.Equal(t, "http://assets/categories/abc.png", *resp.ImageURL)
	repo.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestService_Create_StorageFailureAbortsCreate(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	image := imageHeader("logo.png", 100)

	repo.On("ExistsByName", mock.Anything, "Tools", "").Return(false, nil)
	store.On("Put", mock.Anything, "categories", image).
		Return("", errors.New("disk full"))

	_, err := svc.Create(context.Background(), CreateInput{
		Name:  "Tools",
		Image: image,
	})

	require.ErrorIs(t, err, core.ErrStorage)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Update_NotFound(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	repo.On("GetByID", mock.Anything, "missing").Return(nil, core.ErrNotFound)

	_, err := svc.Update(context.Background(), "missing", UpdateInput{})

	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_Update_PartialFieldsUnchanged(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	existing := &Category{
		ID:          "c1",
		Name:        "Tools",
		Description: strPtr("old description"),
	}

	repo.On("GetByID", mock.Anything, "c1").Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *Category) bool {
		return c.Name == "Tools" &&
			c.Description != nil && *c.Description == "new description"
	})).Return(nil)

	resp, err := svc.Update(context.Background(), "c1", UpdateInput{
		Description: strPtr("new description"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Tools", resp.Name)
	repo.AssertExpectations(t)
}

func TestService_Update_ReplacesImage(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	existing := &Category{
		ID:        "c1",
		Name:      "Tools",
		ImagePath: strPtr("categories/old.png"),
	}
	newImage := imageHeader("new.png", 100)

	repo.On("GetByID", mock.Anything, "c1").Return(existing, nil)
	store.On("Exists", mock.Anything, "categories/old.png").Return(true, nil)
	store.On("Delete", mock.Anything, "categories/old.png").Return(nil)
	store.On("Put", mock.Anything, "categories", newImage).
		Return("categories/new.png", nil)
	store.On("PublicURL", "categories/new.png").
		Return("http://assets/categories/new.png")
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *Category) bool {
		return c.ImagePath != nil && *c.ImagePath == "categories/new.png"
	})).Return(nil)

	resp, err := svc.Update(context.Background(), "c1", UpdateInput{Image: newImage})

	require.NoError(t, err)
	require.NotNil(t, resp.ImageURL)
	assert.Equal(t, "http://assets/categories/new.png", *resp.ImageURL)
	store.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestService_Update_OldImageDeleteFailureIgnored(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	existing := &Category{
		ID:        "c1",
		Name:      "Tools",
		ImagePath: strPtr("categories/old.png"),
	}
	newImage := imageHeader("new.png", 100)

	repo.On("GetByID", mock.Anything, "c1").Return(existing, nil)
	store.On("Exists", mock.Anything, "categories/old.png").Return(true, nil)
	store.On("Delete", mock.Anything, "categories/old.png").
		Return(errors.New("object locked"))
	store.On("Put", mock.Anything, "categories", newImage).
		Return("categories/new.png", nil)
	store.On("PublicURL", "categories/new.png").
		Return("http://assets/categories/new.png")
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Update(context.Background(), "c1", UpdateInput{Image: newImage})

	assert.NoError(t, err)
}

func TestService_Delete_RecordFirstFilesBestEffort(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	existing := &Category{
		ID:        "c1",
		Name:      "Tools",
		ImagePath: strPtr("categories/old.png"),
	}

	repo.On("GetByID", mock.Anything, "c1").Return(existing, nil)
	repo.On("Delete", mock.Anything, "c1").Return(nil)
	store.On("Exists", mock.Anything, "categories/old.png").Return(true, nil)
	store.On("Delete", mock.Anything, "categories/old.png").
		Return(errors.New("object locked"))

	err := svc.Delete(context.Background(), "c1")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	repo.On("GetByID", mock.Anything, "missing").Return(nil, core.ErrNotFound)

	err := svc.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, core.ErrNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
