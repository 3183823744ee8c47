// CatalogHQ | 2026
// handler.go

package product

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cataloghq/catalog-api/internal/core"
)

const maxMultipartMemory = 16 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Get("/products", h.List)
	r.Get("/products/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/products", h.Create)
		r.Put("/products/{id}", h.Update)
		r.Patch("/products/{id}", h.Update)
		r.Delete("/products/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context(), r.URL.Query().Get("category_id"))
	if err != nil {
		core.InternalServerError(w, "list products", err)
		return
	}

	core.OK(w, "OK", products)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Product not found")
			return
		}
		core.InternalServerError(w, "get product", err)
		return
	}

	core.OK(w, "OK", product)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		core.BadRequest(w, "Invalid multipart form")
		return
	}

	input := CreateInput{
		Name:        r.FormValue("name"),
		CategoryID:  r.FormValue("category_id"),
		Description: formValuePtr(r, "description"),
		Image:       formFile(r, "image"),
		CatalogPDF:  formFile(r, "catalog_pdf"),
	}

	product, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, "create product", err)
		return
	}

	core.Created(w, "Product created successfully", product)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		core.BadRequest(w, "Invalid multipart form")
		return
	}

	input := UpdateInput{
		Name:        formValuePtr(r, "name"),
		CategoryID:  formValuePtr(r, "category_id"),
		Description: formValuePtr(r, "description"),
		Image:       formFile(r, "image"),
		CatalogPDF:  formFile(r, "catalog_pdf"),
	}

	product, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		h.writeServiceError(w, "update product", err)
		return
	}

	core.OK(w, "Product updated successfully", product)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Product not found")
			return
		}
		core.InternalServerError(w, "delete product", err)
		return
	}

	core.OK(w, "Product deleted successfully", nil)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	if ve, ok := core.AsValidationError(err); ok {
		core.ValidationFailed(w, ve.Fields, "")
		return
	}
	if errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, "Product not found")
		return
	}
	if errors.Is(err, core.ErrStorage) {
		core.StorageFailed(w, op, err)
		return
	}
	core.InternalServerError(w, op, err)
}

func formValuePtr(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}

	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}

	return &values[0]
}

func formFile(r *http.Request, key string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}

	files, ok := r.MultipartForm.File[key]
	if !ok || len(files) == 0 {
		return nil
	}

	return files[0]
}
