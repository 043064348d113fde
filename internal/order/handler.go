// AngelaMos | 2026
// handler.go

package order

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/washtrack/washtrack/internal/authz"
	"github.com/washtrack/washtrack/internal/billing"
	"github.com/washtrack/washtrack/internal/core"
	"github.com/washtrack/washtrack/internal/middleware"
)

type Handler struct {
	service   *Service
	renderer  billing.Renderer
	brand     billing.BrandSource
	validator *validator.Validate
}

func NewHandler(
	service *Service,
	renderer billing.Renderer,
	brand billing.BrandSource,
) *Handler {
	return &Handler{
		service:   service,
		renderer:  renderer,
		brand:     brand,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(authenticator)

		r.With(middleware.RequirePermission(authz.PermOrdersRead)).
			Get("/", h.List)
		r.With(middleware.RequirePermission(authz.PermOrdersCreate)).
			Post("/", h.Create)

		r.Route("/{orderID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(authz.PermOrdersRead)).
				Get("/", h.Get)

			// Edits pass three gates in order: permission, order load,
			// then the lifecycle edit guard.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyPermission(
					authz.PermOrdersUpdate,
					authz.PermOrdersUpdateLimited,
				))
				r.Use(h.LoadOrder)
				r.Use(middleware.CanEditOrder())

				r.Put("/", h.Update)
				r.Patch("/", h.Patch)
			})

			r.With(middleware.RequirePermission(authz.PermOrdersDelete)).
				Delete("/", h.Delete)
			r.With(middleware.RequirePermission(authz.PermOrdersReject)).
				Post("/reject", h.Reject)
			r.With(middleware.RequirePermission(authz.PermOrdersRead)).
				Get("/bill", h.Bill)
			r.With(middleware.RequirePermission(authz.PermOrdersRead)).
				Get("/pdf", h.BillPDF)
		})
	})
}

// LoadOrder fetches the addressed order and attaches its state for the
// edit guard. A failed load attaches nothing; the guard decides what an
// absent order means for the caller.
func (h *Handler) LoadOrder(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "orderID")

		order, err := h.service.Get(r.Context(), id)
		if err == nil {
			r = r.WithContext(
				middleware.WithOrderState(r.Context(), order.State()),
			)
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListOrdersParams{
		Page:          parseIntQuery(r, "page", 1),
		PageSize:      parseIntQuery(r, "pageSize", 20),
		Status:        r.URL.Query().Get("status"),
		PaymentStatus: r.URL.Query().Get("paymentStatus"),
		Search:        r.URL.Query().Get("search"),
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

	orders, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		ToOrderResponseList(orders),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	order, err := h.service.Create(
		r.Context(),
		middleware.GetUserID(r.Context()),
		&req,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToOrderResponse(order))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Get(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToOrderResponse(order))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	order, err := h.service.Update(r.Context(), chi.URLParam(r, "orderID"), &req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToOrderResponse(order))
}

func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	var req PatchOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	order, err := h.service.Patch(r.Context(), chi.URLParam(r, "orderID"), &req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToOrderResponse(order))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "orderID")); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OKMessage(w, nil, "order deleted")
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	var req RejectOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	order, err := h.service.Reject(
		r.Context(),
		chi.URLParam(r, "orderID"),
		middleware.GetUserID(r.Context()),
		req.Reason,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToOrderResponse(order))
}

func (h *Handler) Bill(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Bill(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	invoice := h.invoice(r, order)
	core.OK(w, invoice)
}

func (h *Handler) BillPDF(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Bill(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	pdf, err := h.renderer.Render(h.invoice(r, order))
	if err != nil {
		core.InternalServerError(w, fmt.Errorf("render bill pdf: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(
		`attachment; filename="bill-%s.pdf"`, order.OrderNumber,
	))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) invoice(r *http.Request, order *Order) *billing.Invoice {
	inv := &billing.Invoice{
		BusinessName:  h.brand.BusinessName(r.Context()),
		OrderNumber:   order.OrderNumber,
		CustomerName:  order.CustomerName,
		ContactNumber: order.ContactNumber,
		OrderDate:     order.OrderDate,
		PaymentStatus: string(order.PaymentStatus),
		TotalAmount:   order.TotalAmount,
		GeneratedAt:   time.Now().UTC(),
	}
	if order.CustomerAddress != nil {
		inv.CustomerAddress = *order.CustomerAddress
	}
	for _, line := range order.Services {
		inv.Lines = append(inv.Lines, billing.Line{
			ServiceType: string(line.ServiceType),
			ClothType:   string(line.ClothType),
			Quantity:    line.Quantity,
			UnitCost:    line.UnitCost,
			TotalCost:   line.TotalCost,
		})
	}
	return inv
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
