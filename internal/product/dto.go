// CatalogHQ | 2026
// dto.go

package product

import (
	"mime/multipart"
	"time"

	"github.com/cataloghq/catalog-api/internal/storage"
)

type CreateInput struct {
	Name        string
	CategoryID  string
	Description *string
	Image       *multipart.FileHeader
	CatalogPDF  *multipart.FileHeader
}

// UpdateInput carries a partial update. Nil pointers mean the field was
// absent from the request and must be left unchanged.
type UpdateInput struct {
	Name        *string
	CategoryID  *string
	Description *string
	Image       *multipart.FileHeader
	CatalogPDF  *multipart.FileHeader
}

type Response struct {
	ID            string    `json:"id"`
	CategoryID    string    `json:"category_id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	ImageURL      *string   `json:"image_url,omitempty"`
	CatalogPDFURL *string   `json:"catalog_pdf_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toResponse(p *Product, store storage.ObjectStore) Response {
	resp := Response{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	if p.ImagePath != nil {
		url := store.PublicURL(*p.ImagePath)
		resp.ImageURL = &url
	}
	if p.CatalogPath != nil {
		url := store.PublicURL(*p.CatalogPath)
		resp.CatalogPDFURL = &url
	}

	return resp
}

func toResponseList(products []Product, store storage.ObjectStore) []Response {
	responses := make([]Response, 0, len(products))
	for i := range products {
		responses = append(responses, toResponse(&products[i], store))
	}
	return responses
}
