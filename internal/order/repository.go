package order

import (
	"context"
	"database/sql"
	"errors"

	"vitrine-be/internal/catalog"
	"vitrine-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrderTx persists the order, its line items, and the stock
	// decrements as one atomic unit. Either all writes commit or none do.
	CreateOrderTx(ctx context.Context, o *Order) error

	GetByID(ctx context.Context, orderID uint) (*Order, error)
	ListByCustomer(ctx context.Context, customerID uint, limit, offset int32) ([]*Order, error)
	ListByCompany(ctx context.Context, companyID uint, limit, offset int32) ([]*Order, error)

	// UpdateStatusTx moves the order from exactly `from` to `to`, restoring
	// the given line items' stock in the same transaction. A zero-row
	// update means the status changed concurrently.
	UpdateStatusTx(ctx context.Context, orderID uint, from, to OrderStatus, restock []LineItem) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Uint("company_id", o.CompanyID),
		zap.Int("item_count", len(o.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (external_id, company_id, customer_id, status, total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, o.ExternalID, o.CompanyID, o.CustomerID, o.Status, o.Total).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, o.ID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.Subtotal).
			Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Uint("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}

		if err := catalog.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			if errors.Is(err, catalog.ErrStockConflict) {
				log.Warn("stock consumed concurrently, aborting reservation",
					zap.Uint("product_id", item.ProductID),
					zap.Int("quantity", item.Quantity),
				)
				return ErrReservationConflict
			}
			log.Error("failed to decrement stock",
				zap.Uint("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit reservation", zap.Error(err))
		return err
	}

	committed = true
	log.Info("reservation committed",
		zap.Uint("order_id", o.ID),
		zap.String("total", o.Total.StringFixed(2)),
	)
	return nil
}

func (r *repository) GetByID(ctx context.Context, orderID uint) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, external_id, company_id, customer_id, status, total, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(
		&o.ID, &o.ExternalID, &o.CompanyID, &o.CustomerID,
		&o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item LineItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.Subtotal,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uint, limit, offset int32) ([]*Order, error) {
	return r.list(ctx, `
		SELECT id, external_id, company_id, customer_id, status, total, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, customerID, limit, offset)
}

func (r *repository) ListByCompany(ctx context.Context, companyID uint, limit, offset int32) ([]*Order, error) {
	return r.list(ctx, `
		SELECT id, external_id, company_id, customer_id, status, total, created_at, updated_at
		FROM orders
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, companyID, limit, offset)
}

func (r *repository) list(ctx context.Context, query string, args ...any) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.ExternalID, &o.CompanyID, &o.CustomerID,
			&o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

func (r *repository) UpdateStatusTx(ctx context.Context, orderID uint, from, to OrderStatus, restock []LineItem) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateStatusTx"),
		zap.Uint("order_id", orderID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, to, orderID, from)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Warn("status update matched no rows")
		return ErrTransitionConflict
	}

	for _, item := range restock {
		if err := catalog.RestoreStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			log.Error("failed to restore stock",
				zap.Uint("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	committed = true
	log.Info("order status updated")
	return nil
}
