package catalog

import (
	"context"
	"database/sql"
	"errors"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so stock mutations can run
// inside the reservation transaction owned by the order repository.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id, companyID uint) (*Product, error)
	GetForReservation(ctx context.Context, id, companyID uint) (*Product, error)
	List(ctx context.Context, companyID uint, onlyActive bool, limit, offset int32) ([]*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, company_id, name, description, price, stock, active, created_at, updated_at`

func scanProduct(row *sql.Row) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Description,
		&p.Price, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO products (company_id, name, description, price, stock, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, created_at, updated_at
	`, p.CompanyID, p.Name, p.Description, p.Price, p.Stock).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, active = $5, updated_at = NOW()
		WHERE id = $6 AND company_id = $7
	`, p.Name, p.Description, p.Price, p.Stock, p.Active, p.ID, p.CompanyID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id, companyID uint) (*Product, error) {
	return scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND company_id = $2`,
		id, companyID))
}

// GetForReservation returns the product only when it is active; the
// reservation engine treats inactive products as absent.
func (r *repository) GetForReservation(ctx context.Context, id, companyID uint) (*Product, error) {
	return scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND company_id = $2 AND active = TRUE`,
		id, companyID))
}

func (r *repository) List(ctx context.Context, companyID uint, onlyActive bool, limit, offset int32) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1`
	if onlyActive {
		query += ` AND active = TRUE`
	}
	query += ` ORDER BY id LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.Name, &p.Description,
			&p.Price, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// DecrementStock atomically subtracts qty from the product's stock. The
// guard clause keeps stock from going negative; zero rows affected means a
// concurrent reservation drained the stock after it was checked, and the
// caller must abort its transaction.
func DecrementStock(ctx context.Context, db DBTX, productID uint, qty int) error {
	res, err := db.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`, qty, productID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStockConflict
	}
	return nil
}

// RestoreStock adds qty back, used when an order is canceled before
// preparation started.
func RestoreStock(ctx context.Context, db DBTX, productID uint, qty int) error {
	res, err := db.ExecContext(ctx, `
		UPDATE products
		SET stock = stock + $1, updated_at = NOW()
		WHERE id = $2
	`, qty, productID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
