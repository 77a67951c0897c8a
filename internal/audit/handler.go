// AngelaMos | 2026
// handler.go

package audit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jdstudio/backoffice/internal/core"
)

const listLimit = 50

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, managerOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/audit", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(managerOnly)

		r.Get("/", h.ListRecords)
	})
}

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.List(r.Context(), listLimit)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]any{"records": records})
}
