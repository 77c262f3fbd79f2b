package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID         uint            `json:"id"`
	ExternalID uuid.UUID       `json:"external_id"`
	CompanyID  uint            `json:"company_id"`
	CustomerID uint            `json:"customer_id"`
	Status     OrderStatus     `json:"status"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Items      []LineItem      `json:"items"`
}

// LineItem captures the unit price at reservation time; later catalog price
// changes never alter historical orders.
type LineItem struct {
	ID          uint            `json:"id"`
	OrderID     uint            `json:"order_id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// LineItemRequest is one product-quantity pair submitted by a customer.
type LineItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Actor identifies who is calling into the order service. CompanyID is zero
// when the actor owns no company.
type Actor struct {
	UserID    uint
	IsAdmin   bool
	CompanyID uint
}

// PrivilegedFor reports whether the actor manages orders of the given
// company: platform admins and the company owner qualify.
func (a Actor) PrivilegedFor(companyID uint) bool {
	return a.IsAdmin || (a.CompanyID != 0 && a.CompanyID == companyID)
}
