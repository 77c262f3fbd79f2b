package order

import (
	"context"
	"errors"

	"vitrine-be/internal/catalog"
	"vitrine-be/internal/logger"
	"vitrine-be/internal/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Notifier dispatches customer notifications asynchronously. Calls return
// immediately; delivery is best-effort and failures never reach the caller.
type Notifier interface {
	OrderConfirmation(phone string, orderID uint, total decimal.Decimal)
	StatusUpdate(phone string, orderID uint, status string)
}

// CustomerDirectory is the slice of the user store the order service needs
// to resolve notification targets.
type CustomerDirectory interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

type Service interface {
	// PlaceOrder validates and reserves stock for the requested line items,
	// creates the order atomically, and triggers the confirmation
	// notification after commit.
	PlaceOrder(ctx context.Context, actor Actor, companyID uint, items []LineItemRequest) (*Order, error)

	Get(ctx context.Context, actor Actor, orderID uint) (*Order, error)
	List(ctx context.Context, actor Actor, limit, offset int32) ([]*Order, error)

	// Transition enforces the status lifecycle; only privileged actors may
	// move an order between states.
	Transition(ctx context.Context, actor Actor, orderID uint, newStatus OrderStatus) (*Order, error)
}

type service struct {
	repo      Repository
	products  catalog.Repository
	customers CustomerDirectory
	notifier  Notifier
}

func NewService(repo Repository, products catalog.Repository, customers CustomerDirectory, notifier Notifier) Service {
	return &service{
		repo:      repo,
		products:  products,
		customers: customers,
		notifier:  notifier,
	}
}

func (s *service) PlaceOrder(ctx context.Context, actor Actor, companyID uint, items []LineItemRequest) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Uint("company_id", companyID),
		zap.Uint("customer_id", actor.UserID),
		zap.Int("item_count", len(items)),
	)

	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, req := range items {
		if req.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	// A request naming the same product twice must be checked against its
	// summed quantity, otherwise two lines could each pass individually
	// and jointly overdraw the stock.
	merged := mergeLineRequests(items)

	total := decimal.Zero
	lines := make([]LineItem, 0, len(merged))

	for _, req := range merged {
		p, err := s.products.GetForReservation(ctx, req.ProductID, companyID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				return nil, &ProductNotFoundError{ProductID: req.ProductID}
			}
			log.Error("failed to load product", zap.Uint("product_id", req.ProductID), zap.Error(err))
			return nil, err
		}

		if p.Stock < req.Quantity {
			return nil, &InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   req.Quantity,
				Available:   p.Stock,
			}
		}

		unitPrice := p.Price
		subtotal := unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
		total = total.Add(subtotal)

		lines = append(lines, LineItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    req.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    subtotal,
		})
	}

	o := &Order{
		ExternalID: uuid.New(),
		CompanyID:  companyID,
		CustomerID: actor.UserID,
		Status:     StatusPending,
		Total:      total,
		Items:      lines,
	}

	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		return nil, err
	}

	log.Info("order placed",
		zap.Uint("order_id", o.ID),
		zap.String("total", o.Total.StringFixed(2)),
	)

	s.notifyConfirmation(ctx, o)
	return o, nil
}

// mergeLineRequests sums quantities of duplicate product references,
// preserving first-seen ordering.
func mergeLineRequests(items []LineItemRequest) []LineItemRequest {
	index := make(map[uint]int, len(items))
	merged := make([]LineItemRequest, 0, len(items))

	for _, req := range items {
		if i, ok := index[req.ProductID]; ok {
			merged[i].Quantity += req.Quantity
			continue
		}
		index[req.ProductID] = len(merged)
		merged = append(merged, req)
	}

	return merged
}

func (s *service) Get(ctx context.Context, actor Actor, orderID uint) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.CustomerID != actor.UserID && !actor.PrivilegedFor(o.CompanyID) {
		return nil, ErrForbidden
	}

	return o, nil
}

func (s *service) List(ctx context.Context, actor Actor, limit, offset int32) ([]*Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	if actor.CompanyID != 0 {
		return s.repo.ListByCompany(ctx, actor.CompanyID, limit, offset)
	}
	return s.repo.ListByCustomer(ctx, actor.UserID, limit, offset)
}

func (s *service) Transition(ctx context.Context, actor Actor, orderID uint, newStatus OrderStatus) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Transition"),
		zap.Uint("order_id", orderID),
		zap.String("new_status", string(newStatus)),
	)

	if !newStatus.Valid() {
		return nil, &IllegalTransitionError{To: newStatus}
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !actor.PrivilegedFor(o.CompanyID) {
		return nil, ErrForbidden
	}

	if !CanTransition(o.Status, newStatus) {
		return nil, &IllegalTransitionError{From: o.Status, To: newStatus}
	}

	// Cancellation before preparation returns the reserved units to stock;
	// once preparation started the goods are committed and stay deducted.
	var restock []LineItem
	if newStatus == StatusCanceled &&
		(o.Status == StatusPending || o.Status == StatusConfirmed) {
		restock = o.Items
	}

	if err := s.repo.UpdateStatusTx(ctx, o.ID, o.Status, newStatus, restock); err != nil {
		return nil, err
	}

	o.Status = newStatus
	log.Info("order transitioned", zap.Int("restocked_lines", len(restock)))

	s.notifyStatus(ctx, o)
	return o, nil
}

func (s *service) notifyConfirmation(ctx context.Context, o *Order) {
	log := logger.FromCtx(ctx)

	customer, err := s.customers.GetByID(ctx, o.CustomerID)
	if err != nil {
		log.Warn("skipping confirmation notification, customer lookup failed",
			zap.Uint("order_id", o.ID),
			zap.Error(err),
		)
		return
	}

	s.notifier.OrderConfirmation(customer.Phone, o.ID, o.Total)
}

func (s *service) notifyStatus(ctx context.Context, o *Order) {
	log := logger.FromCtx(ctx)

	customer, err := s.customers.GetByID(ctx, o.CustomerID)
	if err != nil {
		log.Warn("skipping status notification, customer lookup failed",
			zap.Uint("order_id", o.ID),
			zap.Error(err),
		)
		return
	}

	s.notifier.StatusUpdate(customer.Phone, o.ID, string(o.Status))
}
