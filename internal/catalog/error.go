package catalog

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrStockConflict means a conditional stock update matched no rows:
	// the stock observed earlier was consumed by a concurrent reservation.
	ErrStockConflict = errors.New("stock changed concurrently")
)
