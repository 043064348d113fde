// AngelaMos | 2026
// repository.go

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/washtrack/washtrack/internal/core"
)

type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	Replace(ctx context.Context, order *Order) error
	UpdateStatus(ctx context.Context, id string, status *Status, payment *PaymentStatus) error
	Reject(ctx context.Context, id, reason, actorID string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListOrdersParams) ([]Order, int, error)
}

// repository holds the raw handle rather than core.DBTX because create and
// replace must write the header and its line items in one transaction.
type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order *Order) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO orders (
				id, order_number, customer_name, contact_number,
				customer_address, order_date, status, total_amount,
				payment_status, created_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING created_at, updated_at`

		err := tx.GetContext(ctx, order, query,
			order.ID,
			order.OrderNumber,
			order.CustomerName,
			order.ContactNumber,
			order.CustomerAddress,
			order.OrderDate,
			order.Status,
			order.TotalAmount,
			order.PaymentStatus,
			order.CreatedBy,
		)
		if err != nil {
			if core.IsDuplicateKeyError(err) {
				return fmt.Errorf("insert order: %w", core.ErrDuplicateKey)
			}
			return fmt.Errorf("insert order: %w", err)
		}

		return insertServiceLines(ctx, tx, order.ID, order.Services)
	})
	if err != nil {
		return err
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	query := `
		SELECT id, order_number, customer_name, contact_number,
		       customer_address, order_date, status, total_amount,
		       payment_status, created_by, rejection_reason,
		       rejected_at, rejected_by, created_at, updated_at
		FROM orders
		WHERE id = $1`

	var order Order
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}

	if err := r.loadServiceLines(ctx, []*Order{&order}); err != nil {
		return nil, err
	}

	return &order, nil
}

// Replace rewrites the header and swaps the full line-item set atomically.
func (r *repository) Replace(ctx context.Context, order *Order) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE orders
			SET customer_name = $2,
			    contact_number = $3,
			    customer_address = $4,
			    order_date = $5,
			    status = $6,
			    total_amount = $7,
			    payment_status = $8,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING created_at, updated_at`

		err := tx.GetContext(ctx, order, query,
			order.ID,
			order.CustomerName,
			order.ContactNumber,
			order.CustomerAddress,
			order.OrderDate,
			order.Status,
			order.TotalAmount,
			order.PaymentStatus,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return core.ErrNotFound
			}
			return fmt.Errorf("update order: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM order_services WHERE order_id = $1`, order.ID,
		); err != nil {
			return fmt.Errorf("clear order services: %w", err)
		}

		return insertServiceLines(ctx, tx, order.ID, order.Services)
	})
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id string,
	status *Status,
	payment *PaymentStatus,
) error {
	sets := []string{"updated_at = NOW()"}
	args := []any{id}

	if status != nil {
		args = append(args, *status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if payment != nil {
		args = append(args, *payment)
		sets = append(sets, fmt.Sprintf("payment_status = $%d", len(args)))
	}

	query := fmt.Sprintf(
		`UPDATE orders SET %s WHERE id = $1`,
		strings.Join(sets, ", "),
	)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if rows == 0 {
		return core.ErrNotFound
	}

	return nil
}

func (r *repository) Reject(ctx context.Context, id, reason, actorID string) error {
	query := `
		UPDATE orders
		SET status = $2,
		    rejection_reason = $3,
		    rejected_at = $4,
		    rejected_by = $5,
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		id, StatusRejected, reason, time.Now().UTC(), actorID,
	)
	if err != nil {
		return fmt.Errorf("reject order: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reject order: %w", err)
	}
	if rows == 0 {
		return core.ErrNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM orders WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if rows == 0 {
		return core.ErrNotFound
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListOrdersParams,
) ([]Order, int, error) {
	conditions := []string{"1=1"}
	args := []any{}

	if params.Status != "" {
		args = append(args, params.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if params.PaymentStatus != "" {
		args = append(args, params.PaymentStatus)
		conditions = append(conditions, fmt.Sprintf("payment_status = $%d", len(args)))
	}
	if params.Search != "" {
		args = append(args, "%"+escapeLike(params.Search)+"%")
		conditions = append(conditions, fmt.Sprintf(
			"(customer_name ILIKE $%d OR order_number ILIKE $%d OR contact_number ILIKE $%d)",
			len(args), len(args), len(args),
		))
	}
	if params.From != nil {
		args = append(args, *params.From)
		conditions = append(conditions, fmt.Sprintf("order_date >= $%d", len(args)))
	}
	if params.To != nil {
		args = append(args, *params.To)
		conditions = append(conditions, fmt.Sprintf("order_date <= $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM orders WHERE %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(`
		SELECT id, order_number, customer_name, contact_number,
		       customer_address, order_date, status, total_amount,
		       payment_status, created_by, rejection_reason,
		       rejected_at, rejected_by, created_at, updated_at
		FROM orders
		WHERE %s
		ORDER BY order_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args),
	)

	var orders []Order
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	refs := make([]*Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.loadServiceLines(ctx, refs); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *repository) loadServiceLines(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orders))
	byID := make(map[string]*Order, len(orders))
	for _, o := range orders {
		o.Services = []ServiceLine{}
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	query, args, err := sqlx.In(`
		SELECT id, order_id, position, service_type, cloth_type,
		       quantity, unit_cost, total_cost
		FROM order_services
		WHERE order_id IN (?)
		ORDER BY position`, ids)
	if err != nil {
		return fmt.Errorf("build service lines query: %w", err)
	}

	var lines []ServiceLine
	query = r.db.Rebind(query)
	if err := r.db.SelectContext(ctx, &lines, query, args...); err != nil {
		return fmt.Errorf("load service lines: %w", err)
	}

	for _, line := range lines {
		if o, ok := byID[line.OrderID]; ok {
			o.Services = append(o.Services, line)
		}
	}

	return nil
}

func insertServiceLines(
	ctx context.Context,
	tx *sqlx.Tx,
	orderID string,
	lines []ServiceLine,
) error {
	query := `
		INSERT INTO order_services (
			id, order_id, position, service_type, cloth_type,
			quantity, unit_cost, total_cost
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i := range lines {
		lines[i].OrderID = orderID
		lines[i].Position = i + 1
		if _, err := tx.ExecContext(ctx, query,
			lines[i].ID,
			lines[i].OrderID,
			lines[i].Position,
			lines[i].ServiceType,
			lines[i].ClothType,
			lines[i].Quantity,
			lines[i].UnitCost,
			lines[i].TotalCost,
		); err != nil {
			return fmt.Errorf("insert service line: %w", err)
		}
	}

	return nil
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
