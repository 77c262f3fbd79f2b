package company

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type Repository interface {
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id uint) (*Company, error)
	GetByOwner(ctx context.Context, ownerID uint) (*Company, error)
	GetBySlug(ctx context.Context, slug string) (*Company, error)
	GetByDomain(ctx context.Context, domain string) (*Company, error)
	List(ctx context.Context, limit, offset int32) ([]*Company, error)
	Update(ctx context.Context, c *Company) error
	SetDomain(ctx context.Context, id uint, domain *string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const companyColumns = `id, owner_id, name, slug, domain, phone, address, city, state, active, created_at`

func scanCompany(row *sql.Row) (*Company, error) {
	var c Company
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Slug, &c.Domain,
		&c.Phone, &c.Address, &c.City, &c.State, &c.Active, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, c *Company) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO companies (owner_id, name, slug, domain, phone, address, city, state, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING id, created_at
	`, c.OwnerID, c.Name, c.Slug, c.Domain, c.Phone, c.Address, c.City, c.State).
		Scan(&c.ID, &c.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		switch pqErr.Constraint {
		case "companies_slug_key":
			return ErrSlugTaken
		case "companies_domain_key":
			return ErrDomainTaken
		case "companies_owner_id_key":
			return ErrAlreadyOwner
		}
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Company, error) {
	return scanCompany(r.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
}

func (r *repository) GetByOwner(ctx context.Context, ownerID uint) (*Company, error) {
	return scanCompany(r.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE owner_id = $1`, ownerID))
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Company, error) {
	return scanCompany(r.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE slug = $1 AND active = TRUE`, slug))
}

func (r *repository) GetByDomain(ctx context.Context, domain string) (*Company, error) {
	return scanCompany(r.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE domain = $1 AND active = TRUE`, domain))
}

func (r *repository) List(ctx context.Context, limit, offset int32) ([]*Company, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(
			&c.ID, &c.OwnerID, &c.Name, &c.Slug, &c.Domain,
			&c.Phone, &c.Address, &c.City, &c.State, &c.Active, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		companies = append(companies, &c)
	}
	return companies, rows.Err()
}

func (r *repository) Update(ctx context.Context, c *Company) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE companies
		SET name = $1, phone = $2, address = $3, city = $4, state = $5
		WHERE id = $6
	`, c.Name, c.Phone, c.Address, c.City, c.State, c.ID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *repository) SetDomain(ctx context.Context, id uint, domain *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE companies SET domain = $1 WHERE id = $2`, domain, id)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return ErrDomainTaken
	}
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
