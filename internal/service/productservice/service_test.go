package productservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
	"lojasocial/internal/pkg/logger"
	"lojasocial/internal/service/productservice"
)

// MockProductRepository é uma implementação mock da interface ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockStockService é uma implementação mock da interface StockService
type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) Refresh(ctx context.Context, p domain.Product) (domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockStockService) RefreshAll(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	args := m.Called(ctx, products)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockStockService) PurgeLots(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

func TestCreateProduct_ForcesZeroTotal(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, new(MockStockService), logger.NewNop())
	ctx := context.Background()

	mockRepo.On("Save", ctx, domain.Product{Name: "Leite", TotalQuantity: 0}).
		Return(domain.Product{ID: "p1", Name: "Leite"}, nil)

	created, err := svc.CreateProduct(ctx, domain.Product{Name: "  Leite ", TotalQuantity: 99})

	require.NoError(t, err)
	assert.Equal(t, "p1", created.ID)
	mockRepo.AssertExpectations(t)
}

func TestCreateProduct_RequiresName(t *testing.T) {
	svc := productservice.NewService(new(MockProductRepository), new(MockStockService), logger.NewNop())

	_, err := svc.CreateProduct(context.Background(), domain.Product{Name: " "})

	assert.True(t, apperror.IsValidation(err))
}

func TestGetProducts_FiltersAfterRefresh(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockStock := new(MockStockService)
	svc := productservice.NewService(mockRepo, mockStock, logger.NewNop())
	ctx := context.Background()

	stored := []domain.Product{
		{ID: uuid.NewString(), Name: "Arroz Agulha", TotalQuantity: 5},
		{ID: uuid.NewString(), Name: "Arroz Carolino", TotalQuantity: 3},
		{ID: uuid.NewString(), Name: "Feijão", TotalQuantity: 2},
	}
	refreshed := []domain.Product{stored[0], stored[1], stored[2]}
	refreshed[1].TotalQuantity = 0

	mockRepo.On("FindAll", ctx).Return(stored, nil)
	mockStock.On("RefreshAll", ctx, stored).Return(refreshed, nil)

	products, err := svc.GetProducts(ctx, domain.ProductFilter{Name: "arroz", InStockOnly: true})

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Arroz Agulha", products[0].Name)
}

func TestDeleteProduct_WithValidStockFails(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockStock := new(MockStockService)
	svc := productservice.NewService(mockRepo, mockStock, logger.NewNop())
	ctx := context.Background()

	p := domain.Product{ID: "p1", Name: "Arroz", TotalQuantity: 0}
	mockRepo.On("FindByID", ctx, "p1").Return(p, nil)
	mockStock.On("Refresh", ctx, p).Return(domain.Product{ID: "p1", Name: "Arroz", TotalQuantity: 4}, nil)

	err := svc.DeleteProduct(ctx, "p1")

	assert.True(t, apperror.IsValidation(err))
	mockStock.AssertNotCalled(t, "PurgeLots", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteProduct_WithoutValidStockCascadesLots(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockStock := new(MockStockService)
	svc := productservice.NewService(mockRepo, mockStock, logger.NewNop())
	ctx := context.Background()

	p := domain.Product{ID: "p1", Name: "Arroz"}
	mockRepo.On("FindByID", ctx, "p1").Return(p, nil)
	mockStock.On("Refresh", ctx, p).Return(p, nil)
	mockStock.On("PurgeLots", ctx, "p1").Return(nil)
	mockRepo.On("Delete", ctx, "p1").Return(nil)

	require.NoError(t, svc.DeleteProduct(ctx, "p1"))
	mockRepo.AssertExpectations(t)
	mockStock.AssertExpectations(t)
}

func TestGetProductByID_PropagatesNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := productservice.NewService(mockRepo, new(MockStockService), logger.NewNop())
	ctx := context.Background()

	mockRepo.On("FindByID", ctx, "x").Return(domain.Product{}, apperror.NewNotFoundError("x"))

	_, err := svc.GetProductByID(ctx, "x")

	var notFound *apperror.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
