// AngelaMos | 2026
// service_test.go

package expense

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/washtrack/washtrack/internal/core"
)

type fakeRepo struct {
	expenses      map[string]*Expense
	attachFailure error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{expenses: make(map[string]*Expense)}
}

func (f *fakeRepo) Create(_ context.Context, e *Expense) error {
	clone := *e
	f.expenses[e.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (f *fakeRepo) Update(_ context.Context, e *Expense) error {
	if _, ok := f.expenses[e.ID]; !ok {
		return core.ErrNotFound
	}
	clone := *e
	f.expenses[e.ID] = &clone
	return nil
}

func (f *fakeRepo) SetAttachment(_ context.Context, id string, ref *string) error {
	if f.attachFailure != nil {
		return f.attachFailure
	}
	e, ok := f.expenses[id]
	if !ok {
		return core.ErrNotFound
	}
	e.BillAttachment = ref
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.expenses[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.expenses, id)
	return nil
}

func (f *fakeRepo) List(
	_ context.Context,
	_ ListExpensesParams,
) ([]Expense, int, error) {
	out := make([]Expense, 0, len(f.expenses))
	for _, e := range f.expenses {
		out = append(out, *e)
	}
	return out, len(out), nil
}

type fakeBlobs struct {
	saved   map[string]bool
	removed []string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{saved: make(map[string]bool)}
}

func (f *fakeBlobs) Save(
	_ context.Context,
	dir, filename string,
	_ io.Reader,
) (string, error) {
	ref := dir + "/" + filename
	f.saved[ref] = true
	return ref, nil
}

func (f *fakeBlobs) Remove(_ context.Context, ref string) error {
	delete(f.saved, ref)
	f.removed = append(f.removed, ref)
	return nil
}

func newTestService(repo Repository, blobs *fakeBlobs) *Service {
	return NewService(repo, blobs, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func mustCreate(t *testing.T, svc *Service) *Expense {
	t.Helper()
	e, err := svc.Create(context.Background(), "actor-1", &CreateExpenseRequest{
		ExpenseType: "Detergent",
		Amount:      120.456,
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}
	return e
}

func TestCreateAssignsIDAndRounds(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo(), newFakeBlobs())
	e := mustCreate(t, svc)

	if !strings.HasPrefix(e.ExpenseID, "EXP") {
		t.Errorf("expense id %q missing EXP prefix", e.ExpenseID)
	}
	if e.Amount != 120.46 {
		t.Errorf("amount = %v, want 120.46", e.Amount)
	}
	if e.CreatedBy == nil || *e.CreatedBy != "actor-1" {
		t.Errorf("created_by = %v, want actor-1", e.CreatedBy)
	}
}

func TestGetMissingExpense(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo(), newFakeBlobs())

	_, err := svc.Get(context.Background(), "missing")
	appErr, ok := core.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Status != http.StatusNotFound || appErr.Code != "EXPENSE_NOT_FOUND" {
		t.Errorf("got %d %s, want 404 EXPENSE_NOT_FOUND", appErr.Status, appErr.Code)
	}
}

func TestAttachBillReplacesPrevious(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	blobs := newFakeBlobs()
	svc := newTestService(repo, blobs)
	e := mustCreate(t, svc)

	first, err := svc.AttachBill(context.Background(), e.ID, "r1.pdf",
		strings.NewReader("one"))
	if err != nil {
		t.Fatalf("first attach: %v", err)
	}
	if first.BillAttachment == nil || *first.BillAttachment != "expenses/r1.pdf" {
		t.Fatalf("attachment = %v, want expenses/r1.pdf", first.BillAttachment)
	}

	second, err := svc.AttachBill(context.Background(), e.ID, "r2.pdf",
		strings.NewReader("two"))
	if err != nil {
		t.Fatalf("second attach: %v", err)
	}
	if *second.BillAttachment != "expenses/r2.pdf" {
		t.Errorf("attachment = %q, want expenses/r2.pdf", *second.BillAttachment)
	}

	if len(blobs.removed) != 1 || blobs.removed[0] != "expenses/r1.pdf" {
		t.Errorf("removed = %v, want [expenses/r1.pdf]", blobs.removed)
	}
}

func TestAttachBillCleansOrphanOnDBFailure(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.attachFailure = errors.New("db down")
	blobs := newFakeBlobs()
	svc := newTestService(repo, blobs)
	e := mustCreate(t, svc)

	_, err := svc.AttachBill(context.Background(), e.ID, "r1.pdf",
		strings.NewReader("one"))
	if err == nil {
		t.Fatal("expected attach failure")
	}

	if len(blobs.saved) != 0 {
		t.Errorf("orphan blob left behind: %v", blobs.saved)
	}
}

func TestDeleteRemovesAttachment(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	blobs := newFakeBlobs()
	svc := newTestService(repo, blobs)
	e := mustCreate(t, svc)

	if _, err := svc.AttachBill(context.Background(), e.ID, "r1.pdf",
		strings.NewReader("one")); err != nil {
		t.Fatalf("attach: %v", err)
	}

	if err := svc.Delete(context.Background(), e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(blobs.saved) != 0 {
		t.Errorf("attachment not cleaned up: %v", blobs.saved)
	}
}
