// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/washtrack/washtrack/internal/core"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "order_service"),
	}
}

func (s *Service) Create(
	ctx context.Context,
	actorID string,
	req *CreateOrderRequest,
) (*Order, error) {
	lines := buildServiceLines(req.Services)

	orderDate := time.Now().UTC()
	if req.OrderDate != nil {
		orderDate = req.OrderDate.UTC()
	}

	order := &Order{
		ID:            uuid.NewString(),
		OrderNumber:   core.NewOrderNumber(),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		ContactNumber: strings.TrimSpace(req.ContactNumber),
		OrderDate:     orderDate,
		Status:        StatusPending,
		TotalAmount:   sumLines(lines),
		PaymentStatus: PaymentUnpaid,
		Services:      lines,
	}
	if req.CustomerAddress != nil {
		addr := strings.TrimSpace(*req.CustomerAddress)
		order.CustomerAddress = &addr
	}
	if actorID != "" {
		order.CreatedBy = &actorID
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"total", order.TotalAmount,
	)

	return order, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("order")
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (s *Service) List(
	ctx context.Context,
	params ListOrdersParams,
) ([]Order, int, error) {
	params.Normalize()

	if params.Status != "" && !Status(params.Status).Valid() {
		return nil, 0, core.ValidationError("invalid status filter", nil)
	}
	if params.PaymentStatus != "" && !PaymentStatus(params.PaymentStatus).Valid() {
		return nil, 0, core.ValidationError("invalid payment status filter", nil)
	}

	orders, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

// Update replaces the order and recomputes the total from the submitted
// line items; client-supplied totals are never trusted.
func (s *Service) Update(
	ctx context.Context,
	id string,
	req *UpdateOrderRequest,
) (*Order, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	lines := buildServiceLines(req.Services)

	existing.CustomerName = strings.TrimSpace(req.CustomerName)
	existing.ContactNumber = strings.TrimSpace(req.ContactNumber)
	existing.CustomerAddress = nil
	if req.CustomerAddress != nil {
		addr := strings.TrimSpace(*req.CustomerAddress)
		existing.CustomerAddress = &addr
	}
	if req.OrderDate != nil {
		existing.OrderDate = req.OrderDate.UTC()
	}
	if req.Status != nil {
		existing.Status = Status(*req.Status)
	}
	if req.PaymentStatus != nil {
		existing.PaymentStatus = PaymentStatus(*req.PaymentStatus)
	}
	existing.TotalAmount = sumLines(lines)
	existing.Services = lines

	if err := s.repo.Replace(ctx, existing); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("order")
		}
		return nil, fmt.Errorf("update order: %w", err)
	}

	return existing, nil
}

func (s *Service) Patch(
	ctx context.Context,
	id string,
	req *PatchOrderRequest,
) (*Order, error) {
	if req.Empty() {
		return nil, core.ValidationError("no fields to update", nil)
	}

	var status *Status
	if req.Status != nil {
		v := Status(*req.Status)
		status = &v
	}
	var payment *PaymentStatus
	if req.PaymentStatus != nil {
		v := PaymentStatus(*req.PaymentStatus)
		payment = &v
	}

	if err := s.repo.UpdateStatus(ctx, id, status, payment); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("order")
		}
		return nil, fmt.Errorf("patch order: %w", err)
	}

	return s.Get(ctx, id)
}

func (s *Service) Reject(
	ctx context.Context,
	id, actorID, reason string,
) (*Order, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, core.ValidationError("rejection reason is required", nil)
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status.Terminal() {
		return nil, core.ValidationError(
			fmt.Sprintf("cannot reject an order with status %q", existing.Status), nil,
		)
	}

	if err := s.repo.Reject(ctx, id, reason, actorID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("order")
		}
		return nil, fmt.Errorf("reject order: %w", err)
	}

	s.logger.InfoContext(ctx, "order rejected",
		"order_id", id,
		"rejected_by", actorID,
	)

	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("order")
		}
		return fmt.Errorf("delete order: %w", err)
	}

	s.logger.InfoContext(ctx, "order deleted", "order_id", id)
	return nil
}

// Bill returns the order for billing. Only completed orders can be billed.
func (s *Service) Bill(ctx context.Context, id string) (*Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status != StatusCompleted {
		return nil, core.NewAppError(nil,
			"Bill can only be generated for completed orders",
			http.StatusBadRequest,
			"ORDER_NOT_COMPLETED",
		)
	}

	return order, nil
}

func buildServiceLines(inputs []ServiceLineInput) []ServiceLine {
	lines := make([]ServiceLine, 0, len(inputs))
	for _, in := range inputs {
		lines = append(lines, ServiceLine{
			ID:          uuid.NewString(),
			ServiceType: ServiceType(in.ServiceType),
			ClothType:   ClothType(in.ClothType),
			Quantity:    in.Quantity,
			UnitCost:    roundMoney(in.UnitCost),
			TotalCost:   roundMoney(float64(in.Quantity) * in.UnitCost),
		})
	}
	return lines
}

func sumLines(lines []ServiceLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.TotalCost
	}
	return roundMoney(total)
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
