// AngelaMos | 2026
// repository.go

package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/washtrack/washtrack/internal/core"
)

type Repository interface {
	Create(ctx context.Context, expense *Expense) error
	GetByID(ctx context.Context, id string) (*Expense, error)
	Update(ctx context.Context, expense *Expense) error
	SetAttachment(ctx context.Context, id string, ref *string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListExpensesParams) ([]Expense, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, expense *Expense) error {
	query := `
		INSERT INTO expenses (
			id, expense_id, expense_type, amount, expense_date, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, expense, query,
		expense.ID,
		expense.ExpenseID,
		expense.ExpenseType,
		expense.Amount,
		expense.ExpenseDate,
		expense.CreatedBy,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create expense: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create expense: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Expense, error) {
	query := `
		SELECT id, expense_id, expense_type, amount, expense_date,
		       bill_attachment, created_by, created_at, updated_at
		FROM expenses
		WHERE id = $1`

	var expense Expense
	if err := r.db.GetContext(ctx, &expense, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get expense by id: %w", err)
	}

	return &expense, nil
}

func (r *repository) Update(ctx context.Context, expense *Expense) error {
	query := `
		UPDATE expenses
		SET expense_type = $2,
		    amount = $3,
		    expense_date = $4,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, expense, query,
		expense.ID,
		expense.ExpenseType,
		expense.Amount,
		expense.ExpenseDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.ErrNotFound
		}
		return fmt.Errorf("update expense: %w", err)
	}

	return nil
}

func (r *repository) SetAttachment(ctx context.Context, id string, ref *string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE expenses
		SET bill_attachment = $2, updated_at = NOW()
		WHERE id = $1`, id, ref)
	if err != nil {
		return fmt.Errorf("set expense attachment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set expense attachment: %w", err)
	}
	if rows == 0 {
		return core.ErrNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if rows == 0 {
		return core.ErrNotFound
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListExpensesParams,
) ([]Expense, int, error) {
	conditions := []string{"1=1"}
	args := []any{}

	if params.Search != "" {
		args = append(args, "%"+escapeLike(params.Search)+"%")
		conditions = append(conditions, fmt.Sprintf(
			"(expense_type ILIKE $%d OR expense_id ILIKE $%d)",
			len(args), len(args),
		))
	}
	if params.From != nil {
		args = append(args, *params.From)
		conditions = append(conditions, fmt.Sprintf("expense_date >= $%d", len(args)))
	}
	if params.To != nil {
		args = append(args, *params.To)
		conditions = append(conditions, fmt.Sprintf("expense_date <= $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM expenses WHERE %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}

	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(`
		SELECT id, expense_id, expense_type, amount, expense_date,
		       bill_attachment, created_by, created_at, updated_at
		FROM expenses
		WHERE %s
		ORDER BY expense_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args),
	)

	var expenses []Expense
	if err := r.db.SelectContext(ctx, &expenses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}

	return expenses, total, nil
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
