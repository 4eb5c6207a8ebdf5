package models

import "time"

// OrderStatus is the server-defined order lifecycle state.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusConfirmed  OrderStatus = "CONFIRMED"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// CreateOrderRequest creates one single-item order. The backend accepts
// exactly one vehicleModelColorId per call; multi-item checkouts are split
// into one request per cart item. InstallmentMonths is ignored by the server
// when IsInstallment is false.
type CreateOrderRequest struct {
	VehicleModelColorID int64  `json:"vehicleModelColorId"`
	IsInstallment       bool   `json:"isInstallment"`
	InstallmentMonths   int    `json:"installmentMonths"`
	Notes               string `json:"notes,omitempty"`
}

// OrderLine is a line item of a created order.
type OrderLine struct {
	VehicleModelColorID int64   `json:"vehicleModelColorId"`
	ModelName           string  `json:"modelName"`
	ColorName           string  `json:"colorName"`
	UnitPrice           float64 `json:"unitPrice"`
	Quantity            int     `json:"quantity"`
	TotalPrice          float64 `json:"totalPrice"`
}

// InstallmentPlan is one entry of an installment schedule. Read-only
// projection owned by the server.
type InstallmentPlan struct {
	InstallmentNumber int       `json:"installmentNumber"`
	InstallmentAmount float64   `json:"installmentAmount"`
	DueDate           time.Time `json:"dueDate"`
	Status            string    `json:"status"`
	IsOverdue         bool      `json:"isOverdue"`
}

// Order is a created order as returned by the server. Immutable from the
// client's perspective.
type Order struct {
	ID               int64             `json:"id"`
	OrderCode        string            `json:"orderCode"`
	OrderDate        time.Time         `json:"orderDate"`
	TotalAmount      float64           `json:"totalAmount"`
	PaidAmount       float64           `json:"paidAmount"`
	RemainingAmount  float64           `json:"remainingAmount"`
	PaymentProgress  float64           `json:"paymentProgress"`
	Status           OrderStatus       `json:"status"`
	IsInstallment    bool              `json:"isInstallment"`
	OrderDetails     []OrderLine       `json:"orderDetails"`
	InstallmentPlans []InstallmentPlan `json:"installmentPlans,omitempty"`
	CreatedBy        string            `json:"createdBy"`
	Dealer           string            `json:"dealer"`
}
