package catalog

import (
	"context"
	"errors"
	"strings"

	"vitrine-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, companyID uint, input CreateInput) (*Product, error)
	Update(ctx context.Context, companyID, productID uint, input UpdateInput) (*Product, error)
	Get(ctx context.Context, companyID, productID uint) (*Product, error)
	List(ctx context.Context, companyID uint, onlyActive bool, limit, offset int32) ([]*Product, error)
	Price(ctx context.Context, companyID, productID uint) (decimal.Decimal, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, companyID uint, input CreateInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.Uint("company_id", companyID),
	)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("product name is required")
	}
	if input.Price.IsNegative() {
		return nil, errors.New("price must not be negative")
	}
	if input.Stock < 0 {
		return nil, errors.New("stock must not be negative")
	}

	p := &Product{
		CompanyID:   companyID,
		Name:        name,
		Description: input.Description,
		Price:       input.Price.Round(2),
		Stock:       input.Stock,
		Active:      true,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.Uint("product_id", p.ID))
	return p, nil
}

func (s *service) Update(ctx context.Context, companyID, productID uint, input UpdateInput) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID, companyID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		p.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, errors.New("price must not be negative")
		}
		p.Price = input.Price.Round(2)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, errors.New("stock must not be negative")
		}
		p.Stock = *input.Stock
	}
	if input.Active != nil {
		p.Active = *input.Active
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, companyID, productID uint) (*Product, error) {
	return s.repo.GetByID(ctx, productID, companyID)
}

func (s *service) List(ctx context.Context, companyID uint, onlyActive bool, limit, offset int32) ([]*Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, companyID, onlyActive, limit, offset)
}

// Price is exported for callers that only need the current unit price.
func (s *service) Price(ctx context.Context, companyID, productID uint) (decimal.Decimal, error) {
	p, err := s.repo.GetByID(ctx, productID, companyID)
	if err != nil {
		return decimal.Zero, err
	}
	return p.Price, nil
}
