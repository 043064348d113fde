// AngelaMos | 2026
// dto.go

package expense

import (
	"strings"
	"time"
)

type CreateExpenseRequest struct {
	ExpenseType string     `json:"expenseType" validate:"required,min=1,max=120"`
	Amount      float64    `json:"amount" validate:"gte=0"`
	ExpenseDate *time.Time `json:"expenseDate,omitempty"`
}

type UpdateExpenseRequest struct {
	ExpenseType string     `json:"expenseType" validate:"required,min=1,max=120"`
	Amount      float64    `json:"amount" validate:"gte=0"`
	ExpenseDate *time.Time `json:"expenseDate,omitempty"`
}

type ExpenseResponse struct {
	ID             string    `json:"id"`
	ExpenseID      string    `json:"expenseId"`
	ExpenseType    string    `json:"expenseType"`
	Amount         float64   `json:"amount"`
	ExpenseDate    time.Time `json:"expenseDate"`
	BillAttachment *string   `json:"billAttachment,omitempty"`
	CreatedBy      *string   `json:"createdBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func ToExpenseResponse(e *Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:             e.ID,
		ExpenseID:      e.ExpenseID,
		ExpenseType:    e.ExpenseType,
		Amount:         e.Amount,
		ExpenseDate:    e.ExpenseDate,
		BillAttachment: e.BillAttachment,
		CreatedBy:      e.CreatedBy,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func ToExpenseResponseList(expenses []Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, *ToExpenseResponse(&expenses[i]))
	}
	return out
}

type ListExpensesParams struct {
	Page     int
	PageSize int
	Search   string
	From     *time.Time
	To       *time.Time
}

func (p *ListExpensesParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
	p.Search = strings.TrimSpace(p.Search)
}

func (p *ListExpensesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
