// CatalogHQ | 2026
// handler.go

package category

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cataloghq/catalog-api/internal/core"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing;
// larger parts spill to temp files.
const maxMultipartMemory = 16 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts reads publicly and writes behind the
// authenticated chain.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Get("/categories", h.List)
	r.Get("/categories/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/categories", h.Create)
		r.Put("/categories/{id}", h.Update)
		r.Patch("/categories/{id}", h.Update)
		r.Delete("/categories/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, "list categories", err)
		return
	}

	core.OK(w, "OK", categories)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Category not found")
			return
		}
		core.InternalServerError(w, "get category", err)
		return
	}

	core.OK(w, "OK", category)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		core.BadRequest(w, "Invalid multipart form")
		return
	}

	input := CreateInput{
		Name:        r.FormValue("name"),
		Description: formValuePtr(r, "description"),
		Image:       formFile(r, "image"),
	}

	category, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, "create category", err)
		return
	}

	core.Created(w, "Category created successfully", category)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		core.BadRequest(w, "Invalid multipart form")
		return
	}

	input := UpdateInput{
		Name:        formValuePtr(r, "name"),
		Description: formValuePtr(r, "description"),
		Image:       formFile(r, "image"),
	}

	category, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		h.writeServiceError(w, "update category", err)
		return
	}

	core.OK(w, "Category updated successfully", category)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Category not found")
			return
		}
		core.InternalServerError(w, "delete category", err)
		return
	}

	core.OK(w, "Category deleted successfully", nil)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	if ve, ok := core.AsValidationError(err); ok {
		core.ValidationFailed(w, ve.Fields, "")
		return
	}
	if errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, "Category not found")
		return
	}
	if errors.Is(err, core.ErrStorage) {
		core.StorageFailed(w, op, err)
		return
	}
	core.InternalServerError(w, op, err)
}

// formValuePtr distinguishes an absent field from an empty one so PATCH
// can leave unsent fields untouched.
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
