package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id, companyID uint) (*Product, error) {
	args := m.Called(ctx, id, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) GetForReservation(ctx context.Context, id, companyID uint) (*Product, error) {
	args := m.Called(ctx, id, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, companyID uint, onlyActive bool, limit, offset int32) ([]*Product, error) {
	args := m.Called(ctx, companyID, onlyActive, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		p, err := svc.Create(ctx, 1, CreateInput{
			Name:  "  Espresso Beans  ",
			Price: decimal.RequireFromString("10.999"),
			Stock: 5,
		})
		require.NoError(t, err)

		assert.Equal(t, "Espresso Beans", p.Name)
		assert.True(t, p.Active)
		// prices are stored with two decimal places
		assert.True(t, p.Price.Equal(decimal.RequireFromString("11.00")), "price was %s", p.Price)
		repo.AssertExpectations(t)
	})

	t.Run("EmptyName", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(ctx, 1, CreateInput{Name: "   ", Price: decimal.Zero})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(ctx, 1, CreateInput{
			Name:  "Bad",
			Price: decimal.RequireFromString("-1.00"),
		})
		assert.Error(t, err)
	})

	t.Run("NegativeStock", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(ctx, 1, CreateInput{
			Name:  "Bad",
			Price: decimal.Zero,
			Stock: -1,
		})
		assert.Error(t, err)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("PartialUpdate", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		stored := &Product{
			ID: 42, CompanyID: 1, Name: "Espresso Beans",
			Price: decimal.RequireFromString("10.00"), Stock: 5, Active: true,
		}
		repo.On("GetByID", ctx, uint(42), uint(1)).Return(stored, nil)
		repo.On("Update", ctx, stored).Return(nil)

		newStock := 12
		p, err := svc.Update(ctx, 1, 42, UpdateInput{Stock: &newStock})
		require.NoError(t, err)

		assert.Equal(t, 12, p.Stock)
		assert.Equal(t, "Espresso Beans", p.Name)
		repo.AssertExpectations(t)
	})

	t.Run("Deactivate", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		stored := &Product{ID: 42, CompanyID: 1, Name: "Espresso Beans", Active: true}
		repo.On("GetByID", ctx, uint(42), uint(1)).Return(stored, nil)
		repo.On("Update", ctx, stored).Return(nil)

		active := false
		p, err := svc.Update(ctx, 1, 42, UpdateInput{Active: &active})
		require.NoError(t, err)
		assert.False(t, p.Active)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", ctx, uint(999), uint(1)).Return(nil, ErrProductNotFound)

		_, err := svc.Update(ctx, 1, 999, UpdateInput{})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_Price(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetByID", ctx, uint(42), uint(1)).Return(&Product{
		ID: 42, CompanyID: 1, Price: decimal.RequireFromString("19.90"),
	}, nil)

	price, err := svc.Price(ctx, 1, 42)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("19.90")))
}
