package stats

import (
	"context"

	"vitrine-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Dashboard(ctx context.Context, companyID uint) (*Dashboard, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Dashboard(ctx context.Context, companyID uint) (*Dashboard, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Dashboard"),
		zap.Uint("company_id", companyID),
	)

	orders, err := s.repo.CountOrders(ctx, companyID)
	if err != nil {
		log.Error("failed to count orders", zap.Error(err))
		return nil, err
	}

	products, err := s.repo.CountProducts(ctx, companyID)
	if err != nil {
		log.Error("failed to count products", zap.Error(err))
		return nil, err
	}

	revenue, billed, err := s.repo.SumRevenue(ctx, companyID)
	if err != nil {
		log.Error("failed to sum revenue", zap.Error(err))
		return nil, err
	}

	// Canceled orders are excluded from both revenue and the divisor, so
	// cancellations never drag the average ticket down.
	avgTicket := decimal.Zero
	if billed > 0 {
		avgTicket = revenue.DivRound(decimal.NewFromInt(billed), 2)
	}

	return &Dashboard{
		TotalOrders:   orders,
		TotalProducts: products,
		TotalRevenue:  revenue,
		AverageTicket: avgTicket,
	}, nil
}
