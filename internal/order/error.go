package order

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyOrder      = errors.New("order has no line items")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrOrderNotFound   = errors.New("order not found")
	ErrForbidden       = errors.New("forbidden")

	// ErrReservationConflict is returned when a concurrent reservation
	// consumed the stock between the check and the commit. The whole
	// transaction is rolled back; the caller may retry.
	ErrReservationConflict = errors.New("reservation conflict")

	// ErrTransitionConflict is returned when the order's status changed
	// between read and update.
	ErrTransitionConflict = errors.New("order status changed concurrently")
)

// ProductNotFoundError names the product that is absent or inactive within
// the caller's company scope.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// InsufficientStockError names the offending product and quantities.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"insufficient stock for product %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available,
	)
}

// IllegalTransitionError reports a status change that is not an edge of the
// lifecycle state machine.
type IllegalTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}
