// CatalogHQ | 2026
// dto.go

package category

import (
	"mime/multipart"
	"time"

	"github.com/cataloghq/catalog-api/internal/storage"
)

// CreateInput carries the multipart create payload. Image is nil when no
// file part was sent.
type CreateInput struct {
	Name        string
	Description *string
	Image       *multipart.FileHeader
}

// UpdateInput carries a partial update. Nil pointers mean the field was
// absent from the request and must be left unchanged.
type UpdateInput struct {
	Name        *string
	Description *string
	Image       *multipart.FileHeader
}

type Response struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(c *Category, store storage.ObjectStore) Response {
	resp := Response{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}

	if c.ImagePath != nil {
		url := store.PublicURL(*c.ImagePath)
		resp.ImageURL = &url
	}

	return resp
}

func toResponseList(categories []Category, store storage.ObjectStore) []Response {
	responses := make([]Response, 0, len(categories))
	for i := range categories {
		responses = append(responses, toResponse(&categories[i], store))
	}
	return responses
}
