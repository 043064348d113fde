// AngelaMos | 2026
// handler.go

package settings

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/washtrack/washtrack/internal/authz"
	"github.com/washtrack/washtrack/internal/core"
	"github.com/washtrack/washtrack/internal/middleware"
)

type Handler struct {
	service      *Service
	validator    *validator.Validate
	maxUploadMem int64
}

func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{
		service:      service,
		validator:    validator.New(validator.WithRequiredStructEnabled()),
		maxUploadMem: maxUploadBytes,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/business-settings", func(r chi.Router) {
		// The public subset backs the login screen, so it skips auth.
		r.Get("/public", h.Public)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.With(middleware.RequirePermission(authz.PermBusinessSettingsRead)).
				Get("/", h.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(authz.PermBusinessSettingsUpdate))

				r.Put("/", h.Update)
				r.Post("/{asset}", h.UploadAsset)
				r.Delete("/{asset}", h.RemoveAsset)
			})
		})
	})
}

func (h *Handler) Public(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToPublicResponse(settings))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToSettingsResponse(settings))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	settings, err := h.service.Update(r.Context(), &req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToSettingsResponse(settings))
}

func (h *Handler) UploadAsset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMem+1024)

	if err := r.ParseMultipartForm(h.maxUploadMem); err != nil {
		core.JSONError(w, core.FileUploadError("invalid multipart upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		core.JSONError(w, core.FileUploadError("missing file field"))
		return
	}
	defer file.Close()

	settings, err := h.service.UploadAsset(
		r.Context(),
		Asset(chi.URLParam(r, "asset")),
		header.Filename,
		file,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToSettingsResponse(settings))
}

func (h *Handler) RemoveAsset(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.RemoveAsset(
		r.Context(),
		Asset(chi.URLParam(r, "asset")),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToSettingsResponse(settings))
}
