// AngelaMos | 2026
// service.go

package expense

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/washtrack/washtrack/internal/core"
	"github.com/washtrack/washtrack/internal/storage"
)

const attachmentDir = "expenses"

type Service struct {
	repo   Repository
	blobs  storage.Store
	logger *slog.Logger
}

func NewService(repo Repository, blobs storage.Store, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		blobs:  blobs,
		logger: logger.With("component", "expense_service"),
	}
}

func (s *Service) Create(
	ctx context.Context,
	actorID string,
	req *CreateExpenseRequest,
) (*Expense, error) {
	expenseDate := time.Now().UTC()
	if req.ExpenseDate != nil {
		expenseDate = req.ExpenseDate.UTC()
	}

	expense := &Expense{
		ID:          uuid.NewString(),
		ExpenseID:   core.NewExpenseID(),
		ExpenseType: strings.TrimSpace(req.ExpenseType),
		Amount:      roundMoney(req.Amount),
		ExpenseDate: expenseDate,
	}
	if actorID != "" {
		expense.CreatedBy = &actorID
	}

	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	s.logger.InfoContext(ctx, "expense created",
		"expense_id", expense.ExpenseID,
		"amount", expense.Amount,
	)

	return expense, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Expense, error) {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("expense")
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return expense, nil
}

func (s *Service) List(
	ctx context.Context,
	params ListExpensesParams,
) ([]Expense, int, error) {
	params.Normalize()

	expenses, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, total, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req *UpdateExpenseRequest,
) (*Expense, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.ExpenseType = strings.TrimSpace(req.ExpenseType)
	existing.Amount = roundMoney(req.Amount)
	if req.ExpenseDate != nil {
		existing.ExpenseDate = req.ExpenseDate.UTC()
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("expense")
		}
		return nil, fmt.Errorf("update expense: %w", err)
	}

	return existing, nil
}

// AttachBill stores the uploaded receipt and points the expense at it.
// A previously attached file is removed best-effort after the DB write.
func (s *Service) AttachBill(
	ctx context.Context,
	id, filename string,
	file io.Reader,
) (*Expense, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ref, err := s.blobs.Save(ctx, attachmentDir, filename, file)
	if err != nil {
		if core.IsAppError(err) {
			return nil, err
		}
		return nil, core.FileUploadError("could not store the uploaded file")
	}

	if err := s.repo.SetAttachment(ctx, id, &ref); err != nil {
		// The blob is now an orphan; reclaim it before reporting.
		if rmErr := s.blobs.Remove(ctx, ref); rmErr != nil {
			s.logger.WarnContext(ctx, "orphaned attachment cleanup failed",
				"ref", ref, "error", rmErr)
		}
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("expense")
		}
		return nil, fmt.Errorf("attach expense bill: %w", err)
	}

	if existing.BillAttachment != nil {
		if rmErr := s.blobs.Remove(ctx, *existing.BillAttachment); rmErr != nil {
			s.logger.WarnContext(ctx, "stale attachment cleanup failed",
				"ref", *existing.BillAttachment, "error", rmErr)
		}
	}

	existing.BillAttachment = &ref
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("expense")
		}
		return fmt.Errorf("delete expense: %w", err)
	}

	if existing.BillAttachment != nil {
		if rmErr := s.blobs.Remove(ctx, *existing.BillAttachment); rmErr != nil {
			s.logger.WarnContext(ctx, "attachment cleanup failed",
				"ref", *existing.BillAttachment, "error", rmErr)
		}
	}

	s.logger.InfoContext(ctx, "expense deleted", "expense_id", existing.ExpenseID)
	return nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
