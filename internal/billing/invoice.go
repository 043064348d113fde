// AngelaMos | 2026
// invoice.go

package billing

import (
	"context"
	"time"
)

// BrandSource supplies the business identity printed on bills.
type BrandSource interface {
	BusinessName(ctx context.Context) string
}

type Line struct {
	ServiceType string  `json:"serviceType"`
	ClothType   string  `json:"clothType"`
	Quantity    int     `json:"quantity"`
	UnitCost    float64 `json:"unitCost"`
	TotalCost   float64 `json:"totalCost"`
}

type Invoice struct {
	BusinessName    string    `json:"businessName"`
	OrderNumber     string    `json:"orderNumber"`
	CustomerName    string    `json:"customerName"`
	ContactNumber   string    `json:"contactNumber"`
	CustomerAddress string    `json:"customerAddress,omitempty"`
	OrderDate       time.Time `json:"orderDate"`
	PaymentStatus   string    `json:"paymentStatus"`
	Lines           []Line    `json:"lines"`
	TotalAmount     float64   `json:"totalAmount"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// Renderer turns an invoice into a downloadable document.
type Renderer interface {
	Render(inv *Invoice) ([]byte, error)
}
