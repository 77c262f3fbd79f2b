package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder() *Order {
	price := decimal.RequireFromString("10.00")
	return &Order{
		ExternalID: uuid.New(),
		CompanyID:  1,
		CustomerID: 7,
		Status:     StatusPending,
		Total:      price.Mul(decimal.NewFromInt(3)),
		Items: []LineItem{
			{
				ProductID:   42,
				ProductName: "Espresso Beans",
				Quantity:    3,
				UnitPrice:   price,
				Subtotal:    price.Mul(decimal.NewFromInt(3)),
			},
		},
	}
}

func TestRepository_CreateOrderTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		o := newTestOrder()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs(o.ExternalID, o.CompanyID, o.CustomerID, o.Status, o.Total).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(100, time.Now(), time.Now()))
		mock.ExpectQuery(`INSERT INTO order_items`).
			WithArgs(uint(100), o.Items[0].ProductID, o.Items[0].ProductName,
				o.Items[0].Quantity, o.Items[0].UnitPrice, o.Items[0].Subtotal).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(500))
		mock.ExpectExec(`UPDATE products\s+SET stock = stock - \$1`).
			WithArgs(o.Items[0].Quantity, o.Items[0].ProductID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateOrderTx(ctx, o)
		assert.NoError(t, err)
		assert.Equal(t, uint(100), o.ID)
		assert.Equal(t, uint(500), o.Items[0].ID)
		assert.Equal(t, uint(100), o.Items[0].OrderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StockConflictRollsBack", func(t *testing.T) {
		o := newTestOrder()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(101, time.Now(), time.Now()))
		mock.ExpectQuery(`INSERT INTO order_items`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(501))
		// Another reservation drained the stock between check and commit.
		mock.ExpectExec(`UPDATE products\s+SET stock = stock - \$1`).
			WithArgs(o.Items[0].Quantity, o.Items[0].ProductID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.CreateOrderTx(ctx, o)
		assert.ErrorIs(t, err, ErrReservationConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsertFailureRollsBack", func(t *testing.T) {
		o := newTestOrder()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnError(errors.New("db down"))
		mock.ExpectRollback()

		err := repo.CreateOrderTx(ctx, o)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		extID := uuid.New()
		mock.ExpectQuery(`SELECT .* FROM orders\s+WHERE id = \$1`).
			WithArgs(uint(100)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "external_id", "company_id", "customer_id", "status", "total", "created_at", "updated_at",
			}).AddRow(100, extID, 1, 7, "PENDING", "30.00", time.Now(), time.Now()))
		mock.ExpectQuery(`SELECT .* FROM order_items\s+WHERE order_id = \$1`).
			WithArgs(uint(100)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "order_id", "product_id", "product_name", "quantity", "unit_price", "subtotal",
			}).AddRow(500, 100, 42, "Espresso Beans", 3, "10.00", "30.00"))

		o, err := repo.GetByID(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, uint(100), o.ID)
		assert.Equal(t, StatusPending, o.Status)
		require.Len(t, o.Items, 1)
		assert.Equal(t, 3, o.Items[0].Quantity)
		assert.True(t, o.Total.Equal(decimal.RequireFromString("30.00")))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders\s+WHERE id = \$1`).
			WithArgs(uint(999)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "external_id", "company_id", "customer_id", "status", "total", "created_at", "updated_at",
			}))

		_, err := repo.GetByID(ctx, 999)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_UpdateStatusTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE orders\s+SET status = \$1`).
			WithArgs(StatusConfirmed, uint(100), StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateStatusTx(ctx, 100, StatusPending, StatusConfirmed, nil)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CancelRestoresStock", func(t *testing.T) {
		restock := []LineItem{{ProductID: 42, Quantity: 3}}

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE orders\s+SET status = \$1`).
			WithArgs(StatusCanceled, uint(100), StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE products\s+SET stock = stock \+ \$1`).
			WithArgs(3, uint(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateStatusTx(ctx, 100, StatusPending, StatusCanceled, restock)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConcurrentTransitionConflict", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE orders\s+SET status = \$1`).
			WithArgs(StatusConfirmed, uint(100), StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.UpdateStatusTx(ctx, 100, StatusPending, StatusConfirmed, nil)
		assert.ErrorIs(t, err, ErrTransitionConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
