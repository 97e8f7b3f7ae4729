package stockservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
	"lojasocial/internal/pkg/logger"
	"lojasocial/internal/service/stockservice"
)

// MockLotRepository é uma implementação mock da interface LotRepository
type MockLotRepository struct {
	mock.Mock
}

func (m *MockLotRepository) CreateLot(ctx context.Context, lot domain.StockLot) (domain.StockLot, error) {
	args := m.Called(ctx, lot)
	return args.Get(0).(domain.StockLot), args.Error(1)
}

func (m *MockLotRepository) GetLot(ctx context.Context, id string) (domain.StockLot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.StockLot), args.Error(1)
}

func (m *MockLotRepository) ListByProduct(ctx context.Context, productID string) ([]domain.StockLot, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.StockLot), args.Error(1)
}

func (m *MockLotRepository) ListAll(ctx context.Context) ([]domain.StockLot, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StockLot), args.Error(1)
}

func (m *MockLotRepository) SetLotQuantity(ctx context.Context, id string, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *MockLotRepository) DeleteLot(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockProductRepository é uma implementação mock da interface ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) SetTotalQuantity(ctx context.Context, id string, total int) error {
	return m.Called(ctx, id, total).Error(0)
}

var fixedNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newService(lots *MockLotRepository, products *MockProductRepository) *stockservice.Service {
	return stockservice.NewService(lots, products, time.UTC, logger.NewNop()).
		WithClock(func() time.Time { return fixedNow })
}

func TestAddLot_RecomputesTotal(t *testing.T) {
	lots := new(MockLotRepository)
	products := new(MockProductRepository)
	svc := newService(lots, products)
	ctx := context.Background()

	product := domain.Product{ID: "p1", Name: "Arroz", TotalQuantity: 0}
	products.On("FindByID", ctx, "p1").Return(product, nil)
	lots.On("CreateLot", ctx, mock.MatchedBy(func(l domain.StockLot) bool {
		return l.ProductID == "p1" && l.Quantity == 5 && l.EntryDate == "2025-01-01" && l.ExpiryDate == "2025-03-01"
	})).Return(domain.StockLot{ID: "l1", ProductID: "p1", Quantity: 5, ExpiryDate: "2025-03-01"}, nil)
	lots.On("ListByProduct", ctx, "p1").Return([]domain.StockLot{{ID: "l1", ProductID: "p1", Quantity: 5, ExpiryDate: "2025-03-01"}}, nil)
	products.On("SetTotalQuantity", ctx, "p1", 5).Return(nil)

	created, err := svc.AddLot(ctx, "p1", domain.StockLot{Quantity: 5, ExpiryDate: "2025-03-01"})

	require.NoError(t, err)
	assert.Equal(t, "l1", created.ID)
	lots.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestAddLot_Validation(t *testing.T) {
	svc := newService(new(MockLotRepository), new(MockProductRepository))
	ctx := context.Background()

	_, err := svc.AddLot(ctx, "p1", domain.StockLot{Quantity: 0})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.AddLot(ctx, "p1", domain.StockLot{Quantity: 1, ExpiryDate: "2025-13-01"})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.AddLot(ctx, "", domain.StockLot{Quantity: 1})
	assert.True(t, apperror.IsValidation(err))
}

func TestClearExpired_DeletesOnlyExpired(t *testing.T) {
	lots := new(MockLotRepository)
	products := new(MockProductRepository)
	svc := newService(lots, products)
	ctx := context.Background()

	current := []domain.StockLot{
		{ID: "ok", ProductID: "p1", Quantity: 10},
		{ID: "velho", ProductID: "p1", Quantity: 5, ExpiryDate: "2020-01-01"},
	}
	products.On("FindByID", ctx, "p1").Return(domain.Product{ID: "p1", TotalQuantity: 10}, nil)
	lots.On("ListByProduct", ctx, "p1").Return(current, nil).Once()
	lots.On("DeleteLot", ctx, "velho").Return(nil).Once()
	lots.On("ListByProduct", ctx, "p1").Return(current[:1], nil).Once()

	removed, err := svc.ClearExpired(ctx, "p1")

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	lots.AssertExpectations(t)
	lots.AssertNotCalled(t, "DeleteLot", ctx, "ok")
	products.AssertNotCalled(t, "SetTotalQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefresh_WritesOnlyWhenChanged(t *testing.T) {
	lots := new(MockLotRepository)
	products := new(MockProductRepository)
	svc := newService(lots, products)
	ctx := context.Background()

	lots.On("ListByProduct", ctx, "p1").Return([]domain.StockLot{
		{ID: "a", Quantity: 3},
		{ID: "b", Quantity: 7, ExpiryDate: "2024-12-31"},
	}, nil)
	products.On("SetTotalQuantity", ctx, "p1", 3).Return(nil).Once()

	p, err := svc.Refresh(ctx, domain.Product{ID: "p1", TotalQuantity: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, p.TotalQuantity)

	p, err = svc.Refresh(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 3, p.TotalQuantity)
	products.AssertNumberOfCalls(t, "SetTotalQuantity", 1)
}

func TestRefresh_MalformedLotIsValidationError(t *testing.T) {
	lots := new(MockLotRepository)
	products := new(MockProductRepository)
	svc := newService(lots, products)
	ctx := context.Background()

	lots.On("ListByProduct", ctx, "p1").Return([]domain.StockLot{
		{ID: "a", Quantity: 3},
		{ID: "b", Quantity: 2, ExpiryDate: "31/12/2025"},
	}, nil)

	_, err := svc.Refresh(ctx, domain.Product{ID: "p1", TotalQuantity: 5})

	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "Integridade de dados")
	products.AssertNotCalled(t, "SetTotalQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidateConsumption_InsufficientStock(t *testing.T) {
	lots := new(MockLotRepository)
	svc := newService(lots, new(MockProductRepository))
	ctx := context.Background()

	lots.On("GetLot", ctx, "l1").Return(domain.StockLot{ID: "l1", ProductID: "p1", Quantity: 1}, nil)
	lots.On("GetLot", ctx, "l2").Return(domain.StockLot{}, apperror.NewNotFoundError("l2"))

	err := svc.ValidateConsumption(ctx, map[string]int{"l1": 2})
	assert.True(t, apperror.IsCapacity(err))

	err = svc.ValidateConsumption(ctx, map[string]int{"l2": 1})
	assert.True(t, apperror.IsCapacity(err))

	err = svc.ValidateConsumption(ctx, map[string]int{"l1": 1})
	assert.NoError(t, err)
}

func TestApplyConsumption_DeletesEmptyLots(t *testing.T) {
	lots := new(MockLotRepository)
	products := new(MockProductRepository)
	svc := newService(lots, products)
	ctx := context.Background()

	lots.On("GetLot", ctx, "l1").Return(domain.StockLot{ID: "l1", ProductID: "p1", Quantity: 2}, nil)
	lots.On("GetLot", ctx, "l2").Return(domain.StockLot{ID: "l2", ProductID: "p1", Quantity: 5}, nil)
	lots.On("DeleteLot", ctx, "l1").Return(nil)
	lots.On("SetLotQuantity", ctx, "l2", 4).Return(nil)
	products.On("FindByID", ctx, "p1").Return(domain.Product{ID: "p1", TotalQuantity: 7}, nil)
	lots.On("ListByProduct", ctx, "p1").Return([]domain.StockLot{{ID: "l2", ProductID: "p1", Quantity: 4}}, nil)
	products.On("SetTotalQuantity", ctx, "p1", 4).Return(nil)

	err := svc.ApplyConsumption(ctx, map[string]int{"l1": 2, "l2": 1})

	require.NoError(t, err)
	lots.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestDeleteLot_RecomputesOwner(t *testing.T) {
	lots := new(MockLotRepository)
	products := new(MockProductRepository)
	svc := newService(lots, products)
	ctx := context.Background()

	lots.On("GetLot", ctx, "l1").Return(domain.StockLot{ID: "l1", ProductID: "p1", Quantity: 4}, nil)
	lots.On("DeleteLot", ctx, "l1").Return(nil)
	products.On("FindByID", ctx, "p1").Return(domain.Product{ID: "p1", TotalQuantity: 6}, nil)
	lots.On("ListByProduct", ctx, "p1").Return([]domain.StockLot{{ID: "l2", ProductID: "p1", Quantity: 2}}, nil)
	products.On("SetTotalQuantity", ctx, "p1", 2).Return(nil)

	require.NoError(t, svc.DeleteLot(ctx, "l1"))
	lots.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestListLots_FEFOOrder(t *testing.T) {
	lots := new(MockLotRepository)
	products := new(MockProductRepository)
	svc := newService(lots, products)
	ctx := context.Background()

	products.On("FindByID", ctx, "p1").Return(domain.Product{ID: "p1"}, nil)
	lots.On("ListByProduct", ctx, "p1").Return([]domain.StockLot{
		{ID: "sem-validade", ProductID: "p1", Quantity: 1},
		{ID: "tarde", ProductID: "p1", Quantity: 1, ExpiryDate: "2025-06-01"},
		{ID: "cedo", ProductID: "p1", Quantity: 1, ExpiryDate: "2025-02-01"},
	}, nil)

	list, err := svc.ListLots(ctx, "p1")

	require.NoError(t, err)
	ids := []string{list[0].ID, list[1].ID, list[2].ID}
	assert.Equal(t, []string{"cedo", "tarde", "sem-validade"}, ids)
}
