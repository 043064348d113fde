// AngelaMos | 2026
// service_test.go

package order

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/washtrack/washtrack/internal/core"
)

type fakeRepo struct {
	orders map[string]*Order
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orders: make(map[string]*Order)}
}

func (f *fakeRepo) Create(_ context.Context, order *Order) error {
	clone := *order
	f.orders[order.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (f *fakeRepo) Replace(_ context.Context, order *Order) error {
	if _, ok := f.orders[order.ID]; !ok {
		return core.ErrNotFound
	}
	clone := *order
	f.orders[order.ID] = &clone
	return nil
}

func (f *fakeRepo) UpdateStatus(
	_ context.Context,
	id string,
	status *Status,
	payment *PaymentStatus,
) error {
	o, ok := f.orders[id]
	if !ok {
		return core.ErrNotFound
	}
	if status != nil {
		o.Status = *status
	}
	if payment != nil {
		o.PaymentStatus = *payment
	}
	return nil
}

func (f *fakeRepo) Reject(_ context.Context, id, reason, actorID string) error {
	o, ok := f.orders[id]
	if !ok {
		return core.ErrNotFound
	}
	o.Status = StatusRejected
	o.RejectionReason = &reason
	o.RejectedBy = &actorID
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.orders[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeRepo) List(
	_ context.Context,
	_ ListOrdersParams,
) ([]Order, int, error) {
	out := make([]Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, len(out), nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func mustCreate(t *testing.T, svc *Service, req *CreateOrderRequest) *Order {
	t.Helper()
	order, err := svc.Create(context.Background(), "actor-1", req)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func basicCreateRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		CustomerName:  "Asha Rao",
		ContactNumber: "9876543210",
		Services: []ServiceLineInput{
			{ServiceType: "washing", ClothType: "normal", Quantity: 5, UnitCost: 10},
			{ServiceType: "ironing", ClothType: "saari", Quantity: 3, UnitCost: 15},
		},
	}
}

func assertAppError(t *testing.T, err error, status int, code string) {
	t.Helper()
	appErr, ok := core.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Status != status {
		t.Errorf("status = %d, want %d", appErr.Status, status)
	}
	if appErr.Code != code {
		t.Errorf("code = %q, want %q", appErr.Code, code)
	}
}

func TestCreateComputesTotal(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo())
	order := mustCreate(t, svc, basicCreateRequest())

	if order.TotalAmount != 95.00 {
		t.Errorf("total = %v, want 95.00", order.TotalAmount)
	}
	if order.Status != StatusPending {
		t.Errorf("status = %q, want %q", order.Status, StatusPending)
	}
	if order.PaymentStatus != PaymentUnpaid {
		t.Errorf("payment = %q, want %q", order.PaymentStatus, PaymentUnpaid)
	}
	if order.OrderNumber == "" || order.OrderNumber[:3] != "ORD" {
		t.Errorf("order number %q missing ORD prefix", order.OrderNumber)
	}
	if len(order.Services) != 2 {
		t.Fatalf("line count = %d, want 2", len(order.Services))
	}
	if order.Services[0].TotalCost != 50.00 {
		t.Errorf("line 0 total = %v, want 50.00", order.Services[0].TotalCost)
	}
}

func TestCreateRoundsMoney(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo())
	order := mustCreate(t, svc, &CreateOrderRequest{
		CustomerName:  "Asha Rao",
		ContactNumber: "9876543210",
		Services: []ServiceLineInput{
			{ServiceType: "washing", ClothType: "normal", Quantity: 3, UnitCost: 0.1},
			{ServiceType: "ironing", ClothType: "normal", Quantity: 1, UnitCost: 0.005},
		},
	})

	if order.Services[0].TotalCost != 0.30 {
		t.Errorf("line 0 total = %v, want 0.30", order.Services[0].TotalCost)
	}
	if order.Services[1].TotalCost != 0.01 {
		t.Errorf("line 1 total = %v, want 0.01", order.Services[1].TotalCost)
	}
	if order.TotalAmount != 0.31 {
		t.Errorf("total = %v, want 0.31", order.TotalAmount)
	}
}

func TestUpdateRecomputesTotal(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo())
	order := mustCreate(t, svc, basicCreateRequest())

	updated, err := svc.Update(context.Background(), order.ID, &UpdateOrderRequest{
		CustomerName:  "Asha Rao",
		ContactNumber: "9876543210",
		Services: []ServiceLineInput{
			{ServiceType: "dry_cleaning", ClothType: "delicate", Quantity: 2, UnitCost: 40},
		},
	})
	if err != nil {
		t.Fatalf("update order: %v", err)
	}

	if updated.TotalAmount != 80.00 {
		t.Errorf("total = %v, want 80.00", updated.TotalAmount)
	}
	if len(updated.Services) != 1 {
		t.Errorf("line count = %d, want 1", len(updated.Services))
	}
}

func TestPatchRequiresField(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo())
	order := mustCreate(t, svc, basicCreateRequest())

	_, err := svc.Patch(context.Background(), order.ID, &PatchOrderRequest{})
	assertAppError(t, err, http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestPatchStatusAndPayment(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo())
	order := mustCreate(t, svc, basicCreateRequest())

	status := string(StatusCompleted)
	payment := string(PaymentPaid)
	patched, err := svc.Patch(context.Background(), order.ID, &PatchOrderRequest{
		Status:        &status,
		PaymentStatus: &payment,
	})
	if err != nil {
		t.Fatalf("patch order: %v", err)
	}

	if patched.Status != StatusCompleted {
		t.Errorf("status = %q, want %q", patched.Status, StatusCompleted)
	}
	if patched.PaymentStatus != PaymentPaid {
		t.Errorf("payment = %q, want %q", patched.PaymentStatus, PaymentPaid)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo())
	order := mustCreate(t, svc, basicCreateRequest())

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := svc.Reject(context.Background(), order.ID, "actor-1", reason)
		assertAppError(t, err, http.StatusBadRequest, "VALIDATION_ERROR")
	}
}

func TestRejectSetsAudit(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo())
	order := mustCreate(t, svc, basicCreateRequest())

	rejected, err := svc.Reject(context.Background(), order.ID, "actor-1", "  torn garment  ")
	if err != nil {
		t.Fatalf("reject order: %v", err)
	}

	if rejected.Status != StatusRejected {
		t.Errorf("status = %q, want %q", rejected.Status, StatusRejected)
	}
	if rejected.RejectionReason == nil || *rejected.RejectionReason != "torn garment" {
		t.Errorf("reason = %v, want trimmed reason", rejected.RejectionReason)
	}
	if rejected.RejectedBy == nil || *rejected.RejectedBy != "actor-1" {
		t.Errorf("rejected_by = %v, want actor-1", rejected.RejectedBy)
	}
}

func TestRejectTerminalOrder(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo())

	for _, terminal := range []Status{StatusCompleted, StatusRejected} {
		order := mustCreate(t, svc, basicCreateRequest())

		if terminal == StatusCompleted {
			s := string(StatusCompleted)
			if _, err := svc.Patch(context.Background(), order.ID, &PatchOrderRequest{Status: &s}); err != nil {
				t.Fatalf("complete order: %v", err)
			}
		} else {
			if _, err := svc.Reject(context.Background(), order.ID, "actor-1", "first pass"); err != nil {
				t.Fatalf("seed rejection: %v", err)
			}
		}

		_, err := svc.Reject(context.Background(), order.ID, "actor-1", "again")
		assertAppError(t, err, http.StatusBadRequest, "VALIDATION_ERROR")
	}
}

func TestBillRequiresCompleted(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo())
	order := mustCreate(t, svc, basicCreateRequest())

	_, err := svc.Bill(context.Background(), order.ID)
	assertAppError(t, err, http.StatusBadRequest, "ORDER_NOT_COMPLETED")

	status := string(StatusCompleted)
	if _, err := svc.Patch(context.Background(), order.ID, &PatchOrderRequest{Status: &status}); err != nil {
		t.Fatalf("complete order: %v", err)
	}

	billed, err := svc.Bill(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("bill completed order: %v", err)
	}
	if billed.TotalAmount != 95.00 {
		t.Errorf("billed total = %v, want 95.00", billed.TotalAmount)
	}
}

func TestGetMissingOrder(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo())

	_, err := svc.Get(context.Background(), "missing")
	assertAppError(t, err, http.StatusNotFound, "ORDER_NOT_FOUND")
}

func TestListRejectsBadFilters(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo())

	_, _, err := svc.List(context.Background(), ListOrdersParams{Status: "Shipped"})
	assertAppError(t, err, http.StatusBadRequest, "VALIDATION_ERROR")

	_, _, err = svc.List(context.Background(), ListOrdersParams{PaymentStatus: "Partial"})
	assertAppError(t, err, http.StatusBadRequest, "VALIDATION_ERROR")
}
