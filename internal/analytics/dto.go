// AngelaMos | 2026
// dto.go

package analytics

import "time"

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

func (p Period) Valid() bool {
	return p == PeriodDaily || p == PeriodWeekly || p == PeriodMonthly
}

// truncUnit maps a period onto the matching date_trunc field.
func (p Period) truncUnit() string {
	switch p {
	case PeriodWeekly:
		return "week"
	case PeriodMonthly:
		return "month"
	default:
		return "day"
	}
}

type Query struct {
	Period Period
	Start  *time.Time
	End    *time.Time
}

type BusinessBucket struct {
	Bucket          time.Time `db:"bucket" json:"bucket"`
	OrderCount      int       `db:"order_count" json:"orderCount"`
	CompletedCount  int       `db:"completed_count" json:"completedCount"`
	RejectedCount   int       `db:"rejected_count" json:"rejectedCount"`
	Revenue         float64   `db:"revenue" json:"revenue"`
	CollectedAmount float64   `db:"collected_amount" json:"collectedAmount"`
}

type ExpenseBucket struct {
	Bucket       time.Time `db:"bucket" json:"bucket"`
	ExpenseCount int       `db:"expense_count" json:"expenseCount"`
	TotalAmount  float64   `db:"total_amount" json:"totalAmount"`
}

type BusinessReport struct {
	Period  string           `json:"period"`
	Buckets []BusinessBucket `json:"buckets"`
}

type ExpenseReport struct {
	Period  string          `json:"period"`
	Buckets []ExpenseBucket `json:"buckets"`
}

type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

type RecentOrder struct {
	ID           string    `db:"id" json:"id"`
	OrderNumber  string    `db:"order_number" json:"orderNumber"`
	CustomerName string    `db:"customer_name" json:"customerName"`
	Status       string    `db:"status" json:"status"`
	TotalAmount  float64   `db:"total_amount" json:"totalAmount"`
	OrderDate    time.Time `db:"order_date" json:"orderDate"`
}

type Dashboard struct {
	OrdersByStatus []StatusCount `json:"ordersByStatus"`
	Revenue        float64       `json:"revenue"`
	UnpaidAmount   float64       `json:"unpaidAmount"`
	ExpenseTotal   float64       `json:"expenseTotal"`
	RecentOrders   []RecentOrder `json:"recentOrders"`
}
