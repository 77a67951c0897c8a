// AngelaMos | 2026
// handler.go

package intake

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

// RegisterRoutes wires the public submission endpoints (rate limited
// per client IP) and the staff review endpoints.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	submitLimiter func(http.Handler) http.Handler,
	authenticator func(http.Handler) http.Handler,
	staffOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(submitLimiter)
		r.Post("/contact", h.SubmitMessage)
		r.Post("/quote", h.SubmitQuote)
	})

	r.Route("/admin/messages", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(staffOnly)
		r.Get("/", h.ListMessages)
		r.Put("/{id}/status", h.UpdateMessageStatus)
	})

	r.Route("/admin/quotes", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(staffOnly)
		r.Get("/", h.ListQuotes)
		r.Put("/{id}/status", h.UpdateQuoteStatus)
	})
}

func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	message, err := h.service.SubmitMessage(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, map[string]string{"id": message.ID})
}

func (h *Handler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	quote, err := h.service.SubmitQuote(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, map[string]string{"id": quote.ID})
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.ListMessages(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	responses := make([]MessageResponse, len(messages))
	for i := range messages {
		responses[i] = ToMessageResponse(&messages[i])
	}

	core.OK(w, responses)
}

func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.service.ListQuotes(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	responses := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		responses[i] = ToQuoteResponse(&quotes[i])
	}

	core.OK(w, responses)
}

func (h *Handler) UpdateMessageStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateMessageStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	actor := middleware.GetUserID(r.Context())
	err := h.service.UpdateMessageStatus(r.Context(), id, req.Status, actor)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "message not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) UpdateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateQuoteStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	actor := middleware.GetUserID(r.Context())
	err := h.service.UpdateQuoteStatus(r.Context(), id, req.Status, actor)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "quote not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
