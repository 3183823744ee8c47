// CatalogHQ | 2026
// service_test.go

package product

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

func (m *mockRepository) Create(ctx context.Context, product *Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, categoryID string) ([]Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, product *Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) CategoryExists(ctx context.Context, categoryID string) (bool, error) {
	args := m.Called(ctx, categoryID)
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

func fileHeader(filename string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: filename, Size: size}
}

func strPtr(s string) *string {
	return &s
}

func TestService_Create_UnknownCategory(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	repo.On("CategoryExists", mock.Anything, "nope").Return(false, nil)

	_, err := svc.Create(context.Background(), CreateInput{
		Name:       "Hammer",
		CategoryID: "nope",
	})

	ve, ok := core.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"The selected category id is invalid"}, ve.Fields["category_id"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_MissingCategory(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	_, err := svc.Create(context.Background(), CreateInput{Name: "Hammer"})

	ve, ok := core.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"This field is required"}, ve.Fields["category_id"])
}

func TestService_Create_WithBothFiles(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	image := fileHeader("hammer.jpg", 100)
	catalog := fileHeader("specs.pdf", 200)

	repo.On("CategoryExists", mock.Anything, "cat1").Return(true, nil)
	store.On("Put", mock.Anything, "products/images", image).
		Return("products/images/a.jpg", nil)
	store.On("Put", mock.Anything, "products/catalogs", catalog).
		Return("products/catalogs/b.pdf", nil)
	store.On("PublicURL", "products/images/a.jpg").
		Return("http://assets/products/images/a.jpg")
	store.On("PublicURL", "products/catalogs/b.pdf").
		Return("http://assets/products/catalogs/b.pdf")
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *Product) bool {
		return p.ImagePath != nil && p.CatalogPath != nil
	})).Return(nil)

	resp, err := svc.Create(context.Background(), CreateInput{
		Name:       "Hammer",
		CategoryID: "cat1",
		Image:      image,
		CatalogPDF: catalog,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.ImageURL)
	require.NotNil(t, resp.CatalogPDFURL)
	assert.Equal(t, "http://assets/products/catalogs/b.pdf", *resp.CatalogPDFURL)
	store.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestService_Create_InvalidCatalogType(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	repo.On("CategoryExists", mock.Anything, "cat1").Return(true, nil)

	_, err := svc.Create(context.Background(), CreateInput{
		Name:       "Hammer",
		CategoryID: "cat1",
		CatalogPDF: fileHeader("specs.docx", 200),
	})

	ve, ok := core.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"must be a file of type: pdf"}, ve.Fields["catalog_pdf"])
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Create_SecondUploadFailureRollsBackFirst(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	image := fileHeader("hammer.jpg", 100)
	catalog := fileHeader("specs.pdf", 200)

	repo.On("CategoryExists", mock.Anything, "cat1").Return(true, nil)
	store.On("Put", mock.Anything, "products/images", image).
		Return("products/images/a.jpg", nil)
	store.On("Put", mock.Anything, "products/catalogs", catalog).
		Return("", errors.New("bucket unreachable"))
	store.On("Exists", mock.Anything, "products/images/a.jpg").Return(true, nil)
	store.On("Delete", mock.Anything, "products/images/a.jpg").Return(nil)

	_, err := svc.Create(context.Background(), CreateInput{
		Name:       "Hammer",
		CategoryID: "cat1",
		Image:      image,
		CatalogPDF: catalog,
	})

	require.ErrorIs(t, err, core.ErrStorage)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	store.AssertCalled(t, "Delete", mock.Anything, "products/images/a.jpg")
}

func TestService_Update_ChangeCategoryValidated(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	existing := &Product{ID: "p1", CategoryID: "cat1", Name: "Hammer"}

	repo.On("GetByID", mock.Anything, "p1").Return(existing, nil)
	repo.On("CategoryExists", mock.Anything, "cat2").Return(false, nil)

	_, err := svc.Update(context.Background(), "p1", UpdateInput{
		CategoryID: strPtr("cat2"),
	})

	ve, ok := core.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"The selected category id is invalid"}, ve.Fields["category_id"])
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Update_ReplacesCatalog(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	existing := &Product{
		ID:          "p1",
		CategoryID:  "cat1",
		Name:        "Hammer",
		CatalogPath: strPtr("products/catalogs/old.pdf"),
	}
	catalog := fileHeader("new.pdf", 200)

	repo.On("GetByID", mock.Anything, "p1").Return(existing, nil)
	store.On("Exists", mock.Anything, "products/catalogs/old.pdf").Return(true, nil)
	store.On("Delete", mock.Anything, "products/catalogs/old.pdf").Return(nil)
	store.On("Put", mock.Anything, "products/catalogs", catalog).
		Return("products/catalogs/new.pdf", nil)
	store.On("PublicURL", "products/catalogs/new.pdf").
		Return("http://assets/products/catalogs/new.pdf")
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *Product) bool {
		return p.CatalogPath != nil && *p.CatalogPath == "products/catalogs/new.pdf"
	})).Return(nil)

	resp, err := svc.Update(context.Background(), "p1", UpdateInput{CatalogPDF: catalog})

	require.NoError(t, err)
	require.NotNil(t, resp.CatalogPDFURL)
	store.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestService_Delete_CleansBothFiles(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	existing := &Product{
		ID:          "p1",
		CategoryID:  "cat1",
		Name:        "Hammer",
		ImagePath:   strPtr("products/images/a.jpg"),
		CatalogPath: strPtr("products/catalogs/b.pdf"),
	}

	repo.On("GetByID", mock.Anything, "p1").Return(existing, nil)
	repo.On("Delete", mock.Anything, "p1").Return(nil)
	store.On("Exists", mock.Anything, "products/images/a.jpg").Return(true, nil)
	store.On("Delete", mock.Anything, "products/images/a.jpg").
		Return(errors.New("object locked"))
	store.On("Exists", mock.Anything, "products/catalogs/b.pdf").Return(true, nil)
	store.On("Delete", mock.Anything, "products/catalogs/b.pdf").Return(nil)

	err := svc.Delete(context.Background(), "p1")

	assert.NoError(t, err)
	store.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestService_List_FilterPassedThrough(t *testing.T) {
	repo := new(mockRepository)
	store := new(mockStore)
	svc := NewService(repo, store)

	repo.On("List", mock.Anything, "cat1").Return([]Product{
		{ID: "p1", CategoryID: "cat1", Name: "Hammer"},
	}, nil)

	resp, err := svc.List(context.Background(), "cat1")

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "Hammer", resp[0].Name)
	assert.Nil(t, resp[0].ImageURL)
}
