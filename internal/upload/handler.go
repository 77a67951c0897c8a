// AngelaMos | 2026
// handler.go

package upload

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jdstudio/backoffice/internal/core"
)

type PresignRequest struct {
	ContentType string `json:"content_type" validate:"required,max=100"`
}

type PresignResponse struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
}

type Handler struct {
	presigner *Presigner
	validator *validator.Validate
}

func NewHandler(presigner *Presigner) *Handler {
	return &Handler{
		presigner: presigner,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	staffOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/uploads", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(staffOnly)
		r.Post("/", h.Presign)
	})
}

func (h *Handler) Presign(w http.ResponseWriter, r *http.Request) {
	var req PresignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	upload, err := h.presigner.Presign(r.Context(), req.ContentType)
	if err != nil {
		if errors.Is(err, ErrUnsupportedType) {
			core.BadRequest(w, "only images and PDFs are allowed")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, PresignResponse{
		UploadURL: upload.UploadURL,
		FileURL:   upload.FileURL,
		Key:       upload.Key,
	})
}
