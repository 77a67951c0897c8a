// AngelaMos | 2026
// handler.go

package invite

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jdstudio/backoffice/internal/core"
	"github.com/jdstudio/backoffice/internal/identity"
	"github.com/jdstudio/backoffice/internal/middleware"
	"github.com/jdstudio/backoffice/internal/user"
)

type Handler struct {
	service   *Service
	identity  *identity.Service
	validator *validator.Validate
	secure    bool
}

func NewHandler(
	service *Service,
	identitySvc *identity.Service,
	secureCookies bool,
) *Handler {
	return &Handler{
		service:   service,
		identity:  identitySvc,
		validator: core.NewValidator(),
		secure:    secureCookies,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	managerOnly func(http.Handler) http.Handler,
) {
	r.Route("/invites", func(r chi.Router) {
		r.Get("/{token}", h.Preview)
		r.Post("/accept", h.Accept)
	})

	r.Route("/admin/invites", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(managerOnly)
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Delete("/{id}", h.Revoke)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	inviterID := middleware.GetUserID(r.Context())

	invite, token, err := h.service.Create(
		r.Context(),
		req.Email,
		req.Role,
		inviterID,
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrForbiddenRole):
			core.JSONError(w, core.ForbiddenError("role cannot be granted"))
		case errors.Is(err, ErrUserExists):
			core.Conflict(w, "a user with this email already exists")
		case errors.Is(err, ErrDuplicatePending):
			core.Conflict(w, "a pending invite already exists for this email")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, CreatedInviteResponse{
		InviteResponse: ToResponse(invite),
		Token:          token,
		AcceptURL:      h.service.AcceptLink(token),
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	invites, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	responses := make([]InviteResponse, len(invites))
	for i := range invites {
		responses[i] = ToResponse(&invites[i])
	}

	core.OK(w, responses)
}

func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actor := middleware.GetUserID(r.Context())

	if err := h.service.Revoke(r.Context(), id, actor); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "invite not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

// Preview lets the accept page show who the invite is for before the
// visitor commits to a password.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	invite, err := h.service.GetByToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, ErrInvalidOrExpired) {
			core.NotFound(w, "invite is invalid or has expired")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, InvitePreview{
		Email:     invite.Email,
		Role:      invite.Role,
		ExpiresAt: invite.ExpiresAt,
	})
}

// Accept provisions a credential for the invite's email, redeems the
// invite against it, and opens the first session.
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	var req CompleteInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	invite, err := h.service.GetByToken(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, ErrInvalidOrExpired) {
			core.NotFound(w, "invite is invalid or has expired")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	uid := uuid.New().String()

	err = h.identity.Provision(r.Context(), uid, invite.Email, req.Password)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.Conflict(w, "an account with this email already exists")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	if _, err := h.service.Complete(r.Context(), req.Token, uid, req.DisplayName); err != nil {
		if errors.Is(err, ErrInvalidOrExpired) {
			core.NotFound(w, "invite is invalid or has expired")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	session, err := h.identity.CreateSession(r.Context(), uid)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	core.Created(w, map[string]string{
		"uid":  uid,
		"role": invite.Role,
	})
}
