// CatalogHQ | 2026
// handler.go

package staff

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cataloghq/catalog-api/internal/core"
	"github.com/cataloghq/catalog-api/internal/middleware"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes mounts the staff area. Each group declares the chain
// suffix it requires: staff for /staff/roles, staff+editor for
// /editor/demo.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	requireStaff func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(requireStaff)

		r.Get("/staff/roles", h.GetRoles)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireStaffRole(RoleEditor))
			r.Get("/editor/demo", h.EditorDemo)
		})
	})
}

type RolesResponse struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
}

func (h *Handler) GetRoles(w http.ResponseWriter, r *http.Request) {
	core.OK(w, "OK", RolesResponse{
		UserID: middleware.GetUserID(r.Context()),
		Roles:  middleware.GetStaffRoles(r.Context()),
	})
}

func (h *Handler) EditorDemo(w http.ResponseWriter, r *http.Request) {
	core.OK(w, "Welcome to the editor area", map[string]any{
		"area":  "editor",
		"roles": middleware.GetStaffRoles(r.Context()),
	})
}
