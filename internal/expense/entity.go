// AngelaMos | 2026
// entity.go

package expense

import "time"

type Expense struct {
	ID             string    `db:"id"`
	ExpenseID      string    `db:"expense_id"`
	ExpenseType    string    `db:"expense_type"`
	Amount         float64   `db:"amount"`
	ExpenseDate    time.Time `db:"expense_date"`
	BillAttachment *string   `db:"bill_attachment"`
	CreatedBy      *string   `db:"created_by"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
