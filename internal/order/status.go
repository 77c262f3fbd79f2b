package order

type OrderStatus string

const (
	StatusPending       OrderStatus = "PENDING"
	StatusConfirmed     OrderStatus = "CONFIRMED"
	StatusInPreparation OrderStatus = "IN_PREPARATION"
	StatusReady         OrderStatus = "READY"
	StatusDelivered     OrderStatus = "DELIVERED"
	StatusCanceled      OrderStatus = "CANCELED"
)

// transitions holds the legal directed edges of the status lifecycle.
// CANCELED is reachable from every non-terminal status; DELIVERED and
// CANCELED are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:       {StatusConfirmed, StatusCanceled},
	StatusConfirmed:     {StatusInPreparation, StatusCanceled},
	StatusInPreparation: {StatusReady, StatusCanceled},
	StatusReady:         {StatusDelivered, StatusCanceled},
	StatusDelivered:     {},
	StatusCanceled:      {},
}

func ParseStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(s)
	_, ok := transitions[status]
	return status, ok
}

func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransition reports whether from → to is a legal edge.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
