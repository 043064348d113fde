// AngelaMos | 2026
// repository.go

package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/washtrack/washtrack/internal/core"
)

type Repository interface {
	BusinessBuckets(ctx context.Context, q Query) ([]BusinessBucket, error)
	ExpenseBuckets(ctx context.Context, q Query) ([]ExpenseBucket, error)
	OrdersByStatus(ctx context.Context) ([]StatusCount, error)
	Revenue(ctx context.Context) (float64, error)
	UnpaidAmount(ctx context.Context) (float64, error)
	ExpenseTotal(ctx context.Context) (float64, error)
	RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// rangeClause appends optional date bounds for the named column. The trunc
// unit is interpolated from a fixed enum, never from caller input.
func rangeClause(column string, q Query, args *[]any) string {
	var b strings.Builder
	if q.Start != nil {
		*args = append(*args, *q.Start)
		fmt.Fprintf(&b, " AND %s >= $%d", column, len(*args))
	}
	if q.End != nil {
		*args = append(*args, *q.End)
		fmt.Fprintf(&b, " AND %s <= $%d", column, len(*args))
	}
	return b.String()
}

func (r *repository) BusinessBuckets(
	ctx context.Context,
	q Query,
) ([]BusinessBucket, error) {
	args := []any{}
	query := fmt.Sprintf(`
		SELECT date_trunc('%s', order_date) AS bucket,
		       COUNT(*) AS order_count,
		       COUNT(*) FILTER (WHERE status = 'Completed') AS completed_count,
		       COUNT(*) FILTER (WHERE status = 'Rejected') AS rejected_count,
		       COALESCE(SUM(total_amount) FILTER (WHERE status = 'Completed'), 0) AS revenue,
		       COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 'Paid'), 0) AS collected_amount
		FROM orders
		WHERE 1=1%s
		GROUP BY bucket
		ORDER BY bucket`,
		q.Period.truncUnit(),
		rangeClause("order_date", q, &args),
	)

	buckets := []BusinessBucket{}
	if err := r.db.SelectContext(ctx, &buckets, query, args...); err != nil {
		return nil, fmt.Errorf("business buckets: %w", err)
	}
	return buckets, nil
}

func (r *repository) ExpenseBuckets(
	ctx context.Context,
	q Query,
) ([]ExpenseBucket, error) {
	args := []any{}
	query := fmt.Sprintf(`
		SELECT date_trunc('%s', expense_date) AS bucket,
		       COUNT(*) AS expense_count,
		       COALESCE(SUM(amount), 0) AS total_amount
		FROM expenses
		WHERE 1=1%s
		GROUP BY bucket
		ORDER BY bucket`,
		q.Period.truncUnit(),
		rangeClause("expense_date", q, &args),
	)

	buckets := []ExpenseBucket{}
	if err := r.db.SelectContext(ctx, &buckets, query, args...); err != nil {
		return nil, fmt.Errorf("expense buckets: %w", err)
	}
	return buckets, nil
}

func (r *repository) OrdersByStatus(ctx context.Context) ([]StatusCount, error) {
	counts := []StatusCount{}
	err := r.db.SelectContext(ctx, &counts, `
		SELECT status, COUNT(*) AS count
		FROM orders
		GROUP BY status
		ORDER BY status`)
	if err != nil {
		return nil, fmt.Errorf("orders by status: %w", err)
	}
	return counts, nil
}

func (r *repository) Revenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.GetContext(ctx, &revenue, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE status = 'Completed'`)
	if err != nil {
		return 0, fmt.Errorf("revenue: %w", err)
	}
	return revenue, nil
}

func (r *repository) UnpaidAmount(ctx context.Context) (float64, error) {
	var unpaid float64
	err := r.db.GetContext(ctx, &unpaid, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE payment_status = 'Unpaid' AND status <> 'Rejected'`)
	if err != nil {
		return 0, fmt.Errorf("unpaid amount: %w", err)
	}
	return unpaid, nil
}

func (r *repository) ExpenseTotal(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses`)
	if err != nil {
		return 0, fmt.Errorf("expense total: %w", err)
	}
	return total, nil
}

func (r *repository) RecentOrders(
	ctx context.Context,
	limit int,
) ([]RecentOrder, error) {
	orders := []RecentOrder{}
	err := r.db.SelectContext(ctx, &orders, `
		SELECT id, order_number, customer_name, status, total_amount, order_date
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	return orders, nil
}
