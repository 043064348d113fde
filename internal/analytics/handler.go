// AngelaMos | 2026
// handler.go

package analytics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/washtrack/washtrack/internal/authz"
	"github.com/washtrack/washtrack/internal/core"
	"github.com/washtrack/washtrack/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/analytics", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequirePermission(authz.PermAnalyticsRead))

		r.Get("/business", h.Business)
		r.Get("/expenses", h.Expenses)
	})

	r.With(authenticator, middleware.RequirePermission(authz.PermDashboardRead)).
		Get("/dashboard", h.Dashboard)
}

func (h *Handler) Business(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	report, err := h.service.BusinessReport(r.Context(), q)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, report)
}

func (h *Handler) Expenses(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	report, err := h.service.ExpenseReport(r.Context(), q)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, report)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, dashboard)
}

func queryFromRequest(r *http.Request) (Query, error) {
	q := Query{Period: PeriodDaily}

	if raw := r.URL.Query().Get("period"); raw != "" {
		q.Period = Period(raw)
	}

	var err error
	if q.Start, err = parseDate(r, "startDate"); err != nil {
		return q, core.ValidationError("invalid startDate, expected YYYY-MM-DD", nil)
	}
	if q.End, err = parseDate(r, "endDate"); err != nil {
		return q, core.ValidationError("invalid endDate, expected YYYY-MM-DD", nil)
	}

	return q, nil
}

func parseDate(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
