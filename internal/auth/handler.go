// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/washtrack/washtrack/internal/config"
	"github.com/washtrack/washtrack/internal/core"
	"github.com/washtrack/washtrack/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
	cookie    config.SessionConfig
}

func NewHandler(service *Service, cookie config.SessionConfig) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		cookie:    cookie,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
		r.Post("/logout", h.Logout)
		r.With(optionalAuth).Get("/status", h.Status)
	})
}

// Login accepts a JSON body or, when the body is absent, an
// Authorization: Basic header carrying the same credentials.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := h.loginCredentials(w, r)
	if !ok {
		return
	}

	principal, sessionID, err := h.service.Login(
		r.Context(),
		req.Username,
		req.Password,
	)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.JSONError(w, core.AuthenticationError(
				"INVALID_CREDENTIALS",
				"invalid username or password",
			))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	h.setSessionCookie(w, sessionID)
	core.OKMessage(w, UserResponse{
		ID:       principal.ID,
		Username: principal.Username,
		Role:     string(principal.Role),
	}, "login successful")
}

func (h *Handler) loginCredentials(
	w http.ResponseWriter,
	r *http.Request,
) (LoginRequest, bool) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if username, password, ok := r.BasicAuth(); ok {
			req = LoginRequest{Username: username, Password: password}
		} else {
			core.BadRequest(w, "invalid request body")
			return req, false
		}
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return req, false
	}

	return req, true
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	principal, sessionID, err := h.service.Register(
		r.Context(),
		req.Username,
		req.Password,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	h.setSessionCookie(w, sessionID)
	core.Created(w, UserResponse{
		ID:       principal.ID,
		Username: principal.Username,
		Role:     string(principal.Role),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cookie.CookieName)
	if err == nil && cookie.Value != "" {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			core.InternalServerError(w, err)
			return
		}
	}

	h.clearSessionCookie(w)
	core.OKMessage(w, nil, "logged out")
}

// Status always answers 200; authentication only changes the payload.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		core.OK(w, StatusResponse{Authenticated: false})
		return
	}

	core.OK(w, StatusResponse{
		Authenticated: true,
		User: &UserResponse{
			ID:       principal.ID,
			Username: principal.Username,
			Role:     string(principal.Role),
		},
	})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL / time.Second),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
