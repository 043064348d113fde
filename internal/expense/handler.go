// AngelaMos | 2026
// handler.go

package expense

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

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
	r.Route("/expenses", func(r chi.Router) {
		r.Use(authenticator)

		r.With(middleware.RequirePermission(authz.PermExpensesRead)).
			Get("/", h.List)
		r.With(middleware.RequirePermission(authz.PermExpensesCreate)).
			Post("/", h.Create)

		r.Route("/{expenseID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(authz.PermExpensesRead)).
				Get("/", h.Get)

			// Mutations check the role's permission token first, then
			// the edit guard. The guard denies every employee outright,
			// but the permission gate keeps the role table the single
			// source of truth for who may mutate.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(authz.PermExpensesUpdate))
				r.Use(middleware.CanEditExpense())

				r.Put("/", h.Update)
				r.Post("/attachment", h.AttachBill)
			})

			r.With(
				middleware.RequirePermission(authz.PermExpensesDelete),
				middleware.CanEditExpense(),
			).Delete("/", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListExpensesParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "pageSize", 20),
		Search:   r.URL.Query().Get("search"),
	}

	var err error
	if params.From, err = parseDateQuery(r, "from"); err != nil {
		core.BadRequest(w, "invalid from date, expected YYYY-MM-DD")
		return
	}
	if params.To, err = parseDateQuery(r, "to"); err != nil {
		core.BadRequest(w, "invalid to date, expected YYYY-MM-DD")
		return
	}

	expenses, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		ToExpenseResponseList(expenses),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	expense, err := h.service.Create(
		r.Context(),
		middleware.GetUserID(r.Context()),
		&req,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToExpenseResponse(expense))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	expense, err := h.service.Get(r.Context(), chi.URLParam(r, "expenseID"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToExpenseResponse(expense))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	expense, err := h.service.Update(r.Context(), chi.URLParam(r, "expenseID"), &req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToExpenseResponse(expense))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "expenseID")); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OKMessage(w, nil, "expense deleted")
}

func (h *Handler) AttachBill(w http.ResponseWriter, r *http.Request) {
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

	expense, err := h.service.AttachBill(
		r.Context(),
		chi.URLParam(r, "expenseID"),
		header.Filename,
		file,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToExpenseResponse(expense))
}

func parseIntQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
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
