package stats

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
)

type Dashboard struct {
	TotalOrders   int64           `json:"total_orders"`
	TotalProducts int64           `json:"total_products"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
}

type Repository interface {
	CountOrders(ctx context.Context, companyID uint) (int64, error)
	CountProducts(ctx context.Context, companyID uint) (int64, error)
	SumRevenue(ctx context.Context, companyID uint) (decimal.Decimal, int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountOrders(ctx context.Context, companyID uint) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(id) FROM orders WHERE company_id = $1`, companyID).Scan(&n)
	return n, err
}

func (r *repository) CountProducts(ctx context.Context, companyID uint) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(id) FROM products WHERE company_id = $1`, companyID).Scan(&n)
	return n, err
}

// SumRevenue excludes canceled orders so a refunded sale never counts
// toward the dashboard. It also returns how many orders produced that
// revenue, so the average ticket divides by the same population.
func (r *repository) SumRevenue(ctx context.Context, companyID uint) (decimal.Decimal, int64, error) {
	var (
		total  decimal.Decimal
		billed int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total), 0), COUNT(id)
		FROM orders
		WHERE company_id = $1 AND status <> 'CANCELED'
	`, companyID).Scan(&total, &billed)
	return total, billed, err
}
