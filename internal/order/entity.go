// AngelaMos | 2026
// entity.go

package order

import (
	"time"

	"github.com/washtrack/washtrack/internal/authz"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusRejected   Status = "Rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further normal-flow transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "Unpaid"
	PaymentPaid   PaymentStatus = "Paid"
)

func (p PaymentStatus) Valid() bool {
	return p == PaymentUnpaid || p == PaymentPaid
}

type ServiceType string

const (
	ServiceWashing     ServiceType = "washing"
	ServiceIroning     ServiceType = "ironing"
	ServiceDryCleaning ServiceType = "dry_cleaning"
	ServiceStainRemove ServiceType = "stain_removal"
)

type ClothType string

const (
	ClothSaari    ClothType = "saari"
	ClothNormal   ClothType = "normal"
	ClothDelicate ClothType = "delicate"
	ClothHeavy    ClothType = "heavy"
)

type Order struct {
	ID              string        `db:"id"`
	OrderNumber     string        `db:"order_number"`
	CustomerName    string        `db:"customer_name"`
	ContactNumber   string        `db:"contact_number"`
	CustomerAddress *string       `db:"customer_address"`
	OrderDate       time.Time     `db:"order_date"`
	Status          Status        `db:"status"`
	TotalAmount     float64       `db:"total_amount"`
	PaymentStatus   PaymentStatus `db:"payment_status"`
	CreatedBy       *string       `db:"created_by"`
	RejectionReason *string       `db:"rejection_reason"`
	RejectedAt      *time.Time    `db:"rejected_at"`
	RejectedBy      *string       `db:"rejected_by"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`

	// Services is the owned line-item set, loaded alongside the header.
	Services []ServiceLine `db:"-"`
}

// ServiceLine is a line item exclusively owned by its order; it is never
// addressed independently and cascades away with the order. Position is
// the 1-based line number within the order; reads return lines in
// submission order, not insertion-timestamp or id order.
type ServiceLine struct {
	ID          string      `db:"id"`
	OrderID     string      `db:"order_id"`
	Position    int         `db:"position"`
	ServiceType ServiceType `db:"service_type"`
	ClothType   ClothType   `db:"cloth_type"`
	Quantity    int         `db:"quantity"`
	UnitCost    float64     `db:"unit_cost"`
	TotalCost   float64     `db:"total_cost"`
}

// State is the snapshot the edit guard evaluates.
func (o *Order) State() *authz.OrderState {
	return &authz.OrderState{
		ID:            o.ID,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
	}
}
