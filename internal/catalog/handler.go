// AngelaMos | 2026
// handler.go

package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jdstudio/backoffice/internal/core"
	"github.com/jdstudio/backoffice/internal/middleware"
)

type Handler struct {
	manager   *Manager
	validator *validator.Validate
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{
		manager:   manager,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	managerOnly func(http.Handler) http.Handler,
) {
	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{slug}", h.Get)
	})

	r.Route("/admin/services", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(managerOnly)
		r.Post("/", h.Create)
		r.Put("/{slug}", h.Update)
		r.Delete("/{slug}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.manager.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	responses := make([]ServiceResponse, len(services))
	for i := range services {
		responses[i] = ToResponse(&services[i])
	}

	core.OK(w, responses)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	service, err := h.manager.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "service not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToResponse(service))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	actor := middleware.GetUserID(r.Context())

	service, err := h.manager.Create(r.Context(), req, actor)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			core.Conflict(w, "a service with this slug already exists")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToResponse(service))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var req ServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	actor := middleware.GetUserID(r.Context())

	service, err := h.manager.Update(r.Context(), slug, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "service not found")
		case errors.Is(err, ErrSlugTaken):
			core.Conflict(w, "a service with the new slug already exists")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToResponse(service))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	actor := middleware.GetUserID(r.Context())

	if err := h.manager.Delete(r.Context(), slug, actor); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "service not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
