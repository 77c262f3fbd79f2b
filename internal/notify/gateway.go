package notify

import (
	"context"

	"github.com/shopspring/decimal"
)

// Gateway delivers customer-facing messages. Implementations are
// best-effort: the caller treats any error as log-and-forget.
type Gateway interface {
	SendOrderConfirmation(ctx context.Context, phone string, orderID uint, total decimal.Decimal) error
	SendStatusUpdate(ctx context.Context, phone string, orderID uint, status string) error
}
