// AngelaMos | 2026
// handler.go

package user

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
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	managerOnly func(http.Handler) http.Handler,
) {
	r.Get("/namecards/{username}", h.GetNamecard)

	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/me", h.GetMe)
		r.Put("/me", h.UpdateMe)
	})

	r.Route("/admin/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(managerOnly)
		r.Get("/", h.List)
		r.Get("/{uid}", h.Get)
		r.Put("/{uid}/role", h.UpdateRole)
		r.Put("/{uid}/projects", h.AssignProjects)
		r.Post("/{uid}/deactivate", h.Deactivate)
		r.Post("/{uid}/reactivate", h.Reactivate)
	})
}

func (h *Handler) GetNamecard(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.service.GetNamecard(r.Context(), username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "namecard not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToNamecardResponse(user))
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserID(r.Context())

	user, err := h.service.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "profile not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToResponse(user))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	uid := middleware.GetUserID(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), uid, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			core.Conflict(w, "this username is already taken")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "profile not found")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToResponse(user))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToResponse(&users[i])
	}

	core.OK(w, responses)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	user, err := h.service.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToResponse(user))
}

func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	actor := middleware.GetUserID(r.Context())
	if err := h.service.UpdateRole(r.Context(), uid, req.Role, actor); err != nil {
		h.writeMutationError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) AssignProjects(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	var req AssignProjectsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	actor := middleware.GetUserID(r.Context())
	err := h.service.AssignProjects(r.Context(), uid, req.Projects, actor)
	if err != nil {
		h.writeMutationError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	actor := middleware.GetUserID(r.Context())

	if err := h.service.Deactivate(r.Context(), uid, actor); err != nil {
		h.writeMutationError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Reactivate(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	actor := middleware.GetUserID(r.Context())

	if err := h.service.Reactivate(r.Context(), uid, actor); err != nil {
		h.writeMutationError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) writeMutationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrFounderProtected):
		core.JSONError(w, core.ForbiddenError("founder account is protected"))
	case errors.Is(err, ErrForbiddenRole):
		core.JSONError(w, core.ForbiddenError("role cannot be granted"))
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "user not found")
	default:
		core.InternalServerError(w, err)
	}
}
