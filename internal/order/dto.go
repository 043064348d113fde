// AngelaMos | 2026
// dto.go

package order

import (
	"strings"
	"time"
)

type ServiceLineInput struct {
	ServiceType string  `json:"serviceType" validate:"required,oneof=washing ironing dry_cleaning stain_removal"`
	ClothType   string  `json:"clothType" validate:"required,oneof=saari normal delicate heavy"`
	Quantity    int     `json:"quantity" validate:"required,min=1"`
	UnitCost    float64 `json:"unitCost" validate:"gte=0"`
}

type CreateOrderRequest struct {
	CustomerName    string             `json:"customerName" validate:"required,min=1,max=120"`
	ContactNumber   string             `json:"contactNumber" validate:"required,min=5,max=20"`
	CustomerAddress *string            `json:"customerAddress,omitempty" validate:"omitempty,max=500"`
	OrderDate       *time.Time         `json:"orderDate,omitempty"`
	Services        []ServiceLineInput `json:"services" validate:"required,min=1,dive"`
}

// UpdateOrderRequest replaces the order wholesale, line items included.
type UpdateOrderRequest struct {
	CustomerName    string             `json:"customerName" validate:"required,min=1,max=120"`
	ContactNumber   string             `json:"contactNumber" validate:"required,min=5,max=20"`
	CustomerAddress *string            `json:"customerAddress,omitempty" validate:"omitempty,max=500"`
	OrderDate       *time.Time         `json:"orderDate,omitempty"`
	Status          *string            `json:"status,omitempty" validate:"omitempty,oneof=Pending 'In Progress' Completed Rejected"`
	PaymentStatus   *string            `json:"paymentStatus,omitempty" validate:"omitempty,oneof=Unpaid Paid"`
	Services        []ServiceLineInput `json:"services" validate:"required,min=1,dive"`
}

type PatchOrderRequest struct {
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=Pending 'In Progress' Completed Rejected"`
	PaymentStatus *string `json:"paymentStatus,omitempty" validate:"omitempty,oneof=Unpaid Paid"`
}

func (r *PatchOrderRequest) Empty() bool {
	return r.Status == nil && r.PaymentStatus == nil
}

type RejectOrderRequest struct {
	Reason string `json:"reason"`
}

type ServiceLineResponse struct {
	ID          string  `json:"id"`
	ServiceType string  `json:"serviceType"`
	ClothType   string  `json:"clothType"`
	Quantity    int     `json:"quantity"`
	UnitCost    float64 `json:"unitCost"`
	TotalCost   float64 `json:"totalCost"`
}

type OrderResponse struct {
	ID              string                `json:"id"`
	OrderNumber     string                `json:"orderNumber"`
	CustomerName    string                `json:"customerName"`
	ContactNumber   string                `json:"contactNumber"`
	CustomerAddress *string               `json:"customerAddress,omitempty"`
	OrderDate       time.Time             `json:"orderDate"`
	Status          string                `json:"status"`
	TotalAmount     float64               `json:"totalAmount"`
	PaymentStatus   string                `json:"paymentStatus"`
	CreatedBy       *string               `json:"createdBy,omitempty"`
	RejectionReason *string               `json:"rejectionReason,omitempty"`
	RejectedAt      *time.Time            `json:"rejectedAt,omitempty"`
	RejectedBy      *string               `json:"rejectedBy,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
	Services        []ServiceLineResponse `json:"services"`
}

func ToOrderResponse(o *Order) *OrderResponse {
	resp := &OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		ContactNumber:   o.ContactNumber,
		CustomerAddress: o.CustomerAddress,
		OrderDate:       o.OrderDate,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		PaymentStatus:   string(o.PaymentStatus),
		CreatedBy:       o.CreatedBy,
		RejectionReason: o.RejectionReason,
		RejectedAt:      o.RejectedAt,
		RejectedBy:      o.RejectedBy,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Services:        make([]ServiceLineResponse, 0, len(o.Services)),
	}
	for _, s := range o.Services {
		resp.Services = append(resp.Services, ServiceLineResponse{
			ID:          s.ID,
			ServiceType: string(s.ServiceType),
			ClothType:   string(s.ClothType),
			Quantity:    s.Quantity,
			UnitCost:    s.UnitCost,
			TotalCost:   s.TotalCost,
		})
	}
	return resp
}

func ToOrderResponseList(orders []Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *ToOrderResponse(&orders[i]))
	}
	return out
}

type ListOrdersParams struct {
	Page          int
	PageSize      int
	Status        string
	PaymentStatus string
	Search        string
	From          *time.Time
	To            *time.Time
}

func (p *ListOrdersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
	p.Status = strings.TrimSpace(p.Status)
	p.PaymentStatus = strings.TrimSpace(p.PaymentStatus)
	p.Search = strings.TrimSpace(p.Search)
}

func (p *ListOrdersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
