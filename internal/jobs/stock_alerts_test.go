package jobs

import (
	"context"
	"errors"
	"testing"

	"vendora/internal/models"
	"vendora/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductRepo) GetForSale(ctx context.Context, q repositories.Querier, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductRepo) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) UpdateStock(ctx context.Context, q repositories.Querier, id uuid.UUID, stock int) error {
	args := m.Called(ctx, q, id, stock)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepo) LowStock(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *mockProductRepo) AdvancedSearch(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func TestCheckLowStock_BuildsAlerts(t *testing.T) {
	repo := new(mockProductRepo)
	svc := NewStockAlertService(repo)

	low := []*models.Product{
		{ID: uuid.New(), Name: "Widget", SKU: "WID-001", Stock: 1, MinStock: 5},
		{ID: uuid.New(), Name: "Gadget", SKU: "GAD-001", Stock: 0, MinStock: 2},
	}
	repo.On("LowStock", mock.Anything).Return(low, nil)

	alerts, err := svc.CheckLowStock(context.Background())
	assert.NoError(t, err)
	assert.Len(t, alerts, 2)
	assert.Equal(t, "Widget", alerts[0].ProductName)
	assert.Equal(t, 1, alerts[0].CurrentStock)
	assert.Equal(t, 5, alerts[0].MinStock)
}

func TestCheckLowStock_NoLowStock(t *testing.T) {
	repo := new(mockProductRepo)
	svc := NewStockAlertService(repo)

	repo.On("LowStock", mock.Anything).Return([]*models.Product{}, nil)

	alerts, err := svc.CheckLowStock(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestCheckLowStock_RepoError(t *testing.T) {
	repo := new(mockProductRepo)
	svc := NewStockAlertService(repo)

	repo.On("LowStock", mock.Anything).Return([]*models.Product(nil), errors.New("db down"))

	alerts, err := svc.CheckLowStock(context.Background())
	assert.Nil(t, alerts)
	assert.Error(t, err)
}
