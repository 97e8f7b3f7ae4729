package deliveryservice_test

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
	"lojasocial/internal/service/deliveryservice"
)

type MockDraftRepository struct{ mock.Mock }

func (m *MockDraftRepository) Save(ctx context.Context, draft domain.DeliveryDraft) error {
	return m.Called(ctx, draft).Error(0)
}

func (m *MockDraftRepository) Get(ctx context.Context, id string) (domain.DeliveryDraft, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.DeliveryDraft), args.Error(1)
}

func (m *MockDraftRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Create(ctx context.Context, d domain.Delivery) (domain.Delivery, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(domain.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindByID(ctx context.Context, id string) (domain.Delivery, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) List(ctx context.Context, status domain.DeliveryStatus) ([]domain.Delivery, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d domain.Delivery) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDeliveryRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) FindAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

type MockStock struct{ mock.Mock }

func (m *MockStock) ConsumableByProduct(ctx context.Context) (map[string][]domain.StockLot, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string][]domain.StockLot), args.Error(1)
}

func (m *MockStock) ValidateConsumption(ctx context.Context, byLot map[string]int) error {
	return m.Called(ctx, byLot).Error(0)
}

func (m *MockStock) ApplyConsumption(ctx context.Context, byLot map[string]int) error {
	return m.Called(ctx, byLot).Error(0)
}

type MockRequests struct{ mock.Mock }

func (m *MockRequests) GetRequest(ctx context.Context, id string) (domain.Request, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Request), args.Error(1)
}

func (m *MockRequests) Complete(ctx context.Context, session domain.Session, id string) (domain.Request, error) {
	args := m.Called(ctx, session, id)
	return args.Get(0).(domain.Request), args.Error(1)
}

type MockBeneficiaries struct{ mock.Mock }

func (m *MockBeneficiaries) GetBeneficiaryByID(ctx context.Context, id string) (domain.Beneficiary, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Beneficiary), args.Error(1)
}

type fakeMetrics struct {
	saved    int
	rejected []string
}

func (f *fakeMetrics) DeliverySaved()               { f.saved++ }
func (f *fakeMetrics) CapacityRejected(kind string) { f.rejected = append(f.rejected, kind) }

type fixture struct {
	drafts        *MockDraftRepository
	deliveries    *MockDeliveryRepository
	catalog       *MockCatalog
	stock         *MockStock
	requests      *MockRequests
	beneficiaries *MockBeneficiaries
	metrics       *fakeMetrics
	svc           *deliveryservice.Service
}

var (
	fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	staff    = domain.Session{UserID: "u1", Email: "ana@loja.pt", Role: domain.RoleStaff}
	arroz    = domain.Product{ID: "p1", Name: "Arroz"}
)

func newFixture() *fixture {
	f := &fixture{
		drafts:        new(MockDraftRepository),
		deliveries:    new(MockDeliveryRepository),
		catalog:       new(MockCatalog),
		stock:         new(MockStock),
		requests:      new(MockRequests),
		beneficiaries: new(MockBeneficiaries),
		metrics:       &fakeMetrics{},
	}
	f.svc = deliveryservice.NewService(f.drafts, f.deliveries, f.catalog, f.stock, f.requests, f.beneficiaries, logger.NewNop()).
		WithClock(func() time.Time { return fixedNow }).
		WithMetrics(f.metrics)
	return f
}

func (f *fixture) withStock(ctx context.Context, quantity int) {
	f.catalog.On("FindAll", ctx).Return([]domain.Product{arroz}, nil)
	f.stock.On("ConsumableByProduct", ctx).Return(map[string][]domain.StockLot{
		"p1": {{ID: "l1", ProductID: "p1", Quantity: quantity}},
	}, nil)
}

func TestNewDraft_FromRequestLocksBeneficiary(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.withStock(ctx, 3)
	f.requests.On("GetRequest", ctx, "r1").
		Return(domain.Request{ID: "r1", BeneficiaryID: "b1", Status: domain.RequestInProgress}, nil)
	f.drafts.On("Save", ctx, mock.AnythingOfType("domain.DeliveryDraft")).Return(nil)

	view, err := f.svc.NewDraft(ctx, staff, deliveryservice.NewDraftInput{RequestID: "r1"})

	require.NoError(t, err)
	assert.NotEmpty(t, view.Draft.ID)
	assert.Equal(t, "u1", view.Draft.Owner)
	assert.True(t, view.Draft.BeneficiaryLocked)
	assert.Equal(t, "b1", view.Draft.Delivery.BeneficiaryID)
	assert.Equal(t, "r1", view.Draft.Delivery.RequestID)
	require.Len(t, view.Candidates, 1)
	assert.Equal(t, 3, view.Candidates[0].Available)
}

func TestNewDraft_FromRequestNotInProgress(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.requests.On("GetRequest", ctx, "r1").
		Return(domain.Request{ID: "r1", BeneficiaryID: "b1", Status: domain.RequestNew}, nil)

	_, err := f.svc.NewDraft(ctx, staff, deliveryservice.NewDraftInput{RequestID: "r1"})

	var conflict *apperror.ConflictError
	assert.ErrorAs(t, err, &conflict)
	f.drafts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestNewDraft_ManualRequiresActiveBeneficiary(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.beneficiaries.On("GetBeneficiaryByID", ctx, "b1").Return(domain.Beneficiary{ID: "b1", Name: "Rui", Active: false}, nil)

	_, err := f.svc.NewDraft(ctx, staff, deliveryservice.NewDraftInput{BeneficiaryID: "b1"})

	assert.True(t, apperror.IsValidation(err))
}

func TestAddItem_CapacityErrorDoesNotSaveDraft(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.withStock(ctx, 1)
	draft := domain.DeliveryDraft{ID: "d1", Owner: "u1", Delivery: domain.Delivery{
		Status: domain.DeliveryInProgress,
		Items:  []domain.LineItem{{ProductID: "p1", ProductName: "Arroz", Lots: []domain.LotConsumption{{LotID: "l1", Quantity: 1}}}},
	}}
	f.drafts.On("Get", ctx, "d1").Return(draft, nil)

	_, err := f.svc.AddItem(ctx, staff, "d1", "p1")

	require.True(t, apperror.IsCapacity(err))
	f.drafts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Equal(t, []string{apperror.CapacityLimitReached}, f.metrics.rejected)
}

func TestAddItem_SavesDraft(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.withStock(ctx, 2)
	f.drafts.On("Get", ctx, "d1").Return(domain.DeliveryDraft{ID: "d1", Owner: "u1"}, nil)
	f.drafts.On("Save", ctx, mock.MatchedBy(func(d domain.DeliveryDraft) bool {
		return d.Delivery.CommittedQuantity("p1") == 1
	})).Return(nil)

	view, err := f.svc.AddItem(ctx, staff, "d1", "p1")

	require.NoError(t, err)
	assert.Equal(t, 1, view.Candidates[0].Available)
	f.drafts.AssertExpectations(t)
}

func TestGetDraft_OtherOwnerForbidden(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.drafts.On("Get", ctx, "d1").Return(domain.DeliveryDraft{ID: "d1", Owner: "outro"}, nil)

	_, err := f.svc.GetDraft(ctx, staff, "d1")

	var forbidden *apperror.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)
}

func TestSetBeneficiary_LockedDraftConflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.withStock(ctx, 1)
	f.drafts.On("Get", ctx, "d1").Return(domain.DeliveryDraft{
		ID: "d1", Owner: "u1", BeneficiaryLocked: true, Delivery: domain.Delivery{BeneficiaryID: "b1"},
	}, nil)

	_, err := f.svc.SetBeneficiary(ctx, staff, "d1", "b2")

	var conflict *apperror.ConflictError
	assert.ErrorAs(t, err, &conflict)
	f.beneficiaries.AssertNotCalled(t, "GetBeneficiaryByID", mock.Anything, mock.Anything)
}

func TestSaveDraft_PersistsThenConsumes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.withStock(ctx, 5)
	draft := domain.DeliveryDraft{ID: "d1", Owner: "u1", Delivery: domain.Delivery{
		BeneficiaryID: "b1",
		Status:        domain.DeliveryInProgress,
		Items:         []domain.LineItem{{ProductID: "p1", ProductName: "Arroz", Lots: []domain.LotConsumption{{LotID: "l1", Quantity: 2}}}},
	}}
	byLot := map[string]int{"l1": 2}

	f.drafts.On("Get", ctx, "d1").Return(draft, nil)
	f.beneficiaries.On("GetBeneficiaryByID", ctx, "b1").Return(domain.Beneficiary{ID: "b1", Active: true}, nil)
	f.stock.On("ValidateConsumption", ctx, byLot).Return(nil)
	f.deliveries.On("Create", ctx, mock.MatchedBy(func(d domain.Delivery) bool {
		return d.CreatedBy == "ana@loja.pt" && d.Status == domain.DeliveryInProgress && d.CreatedAt.Equal(fixedNow)
	})).Return(domain.Delivery{ID: "e1", BeneficiaryID: "b1", Status: domain.DeliveryInProgress}, nil)
	f.drafts.On("Save", ctx, mock.MatchedBy(func(d domain.DeliveryDraft) bool {
		return d.SavedDeliveryID == "e1"
	})).Return(nil)
	f.stock.On("ApplyConsumption", ctx, byLot).Return(nil)
	f.drafts.On("Delete", ctx, "d1").Return(nil)

	saved, err := f.svc.SaveDraft(ctx, staff, "d1")

	require.NoError(t, err)
	assert.Equal(t, "e1", saved.ID)
	assert.Equal(t, 1, f.metrics.saved)
	f.deliveries.AssertExpectations(t)
	f.stock.AssertExpectations(t)
	f.drafts.AssertExpectations(t)
}

func twoLotDraft() domain.DeliveryDraft {
	return domain.DeliveryDraft{ID: "d1", Owner: "u1", Delivery: domain.Delivery{
		BeneficiaryID: "b1",
		Status:        domain.DeliveryInProgress,
		Items: []domain.LineItem{{ProductID: "p1", ProductName: "Arroz", Lots: []domain.LotConsumption{
			{LotID: "l1", Quantity: 2},
			{LotID: "l2", Quantity: 1},
		}}},
	}}
}

func TestSaveDraft_RetryAfterConsumptionFailureResumes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.withStock(ctx, 5)
	created := domain.Delivery{ID: "e1", BeneficiaryID: "b1", Status: domain.DeliveryInProgress}

	var stored domain.DeliveryDraft
	f.drafts.On("Get", ctx, "d1").Return(twoLotDraft(), nil).Once()
	f.drafts.On("Save", ctx, mock.AnythingOfType("domain.DeliveryDraft")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.DeliveryDraft) }).
		Return(nil)
	f.beneficiaries.On("GetBeneficiaryByID", ctx, "b1").Return(domain.Beneficiary{ID: "b1", Active: true}, nil)
	f.stock.On("ValidateConsumption", ctx, map[string]int{"l1": 2, "l2": 1}).Return(nil)
	f.deliveries.On("Create", ctx, mock.AnythingOfType("domain.Delivery")).Return(created, nil).Once()
	f.stock.On("ApplyConsumption", ctx, map[string]int{"l1": 2}).Return(nil).Once()
	f.stock.On("ApplyConsumption", ctx, map[string]int{"l2": 1}).Return(assert.AnError).Once()

	_, err := f.svc.SaveDraft(ctx, staff, "d1")

	var internal *apperror.InternalError
	require.ErrorAs(t, err, &internal)
	assert.Equal(t, "e1", stored.SavedDeliveryID)
	assert.Equal(t, []string{"l1"}, stored.ConsumedLots)
	assert.Equal(t, 0, f.metrics.saved)
	f.drafts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	// Nova gravação: retoma no l2 sem criar outra entrega.
	f.drafts.On("Get", ctx, "d1").Return(stored, nil).Once()
	f.deliveries.On("FindByID", ctx, "e1").Return(created, nil)
	f.stock.On("ApplyConsumption", ctx, map[string]int{"l2": 1}).Return(nil).Once()
	f.drafts.On("Delete", ctx, "d1").Return(nil)

	saved, err := f.svc.SaveDraft(ctx, staff, "d1")

	require.NoError(t, err)
	assert.Equal(t, "e1", saved.ID)
	f.deliveries.AssertNumberOfCalls(t, "Create", 1)
	f.stock.AssertNumberOfCalls(t, "ApplyConsumption", 3)
	f.stock.AssertNumberOfCalls(t, "ValidateConsumption", 1)
	assert.Equal(t, 1, f.metrics.saved)
	f.drafts.AssertExpectations(t)
}

func TestSaveDraft_MarkingDraftFailsRollsBackDelivery(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.withStock(ctx, 5)
	f.drafts.On("Get", ctx, "d1").Return(twoLotDraft(), nil)
	f.beneficiaries.On("GetBeneficiaryByID", ctx, "b1").Return(domain.Beneficiary{ID: "b1", Active: true}, nil)
	f.stock.On("ValidateConsumption", ctx, mock.Anything).Return(nil)
	f.deliveries.On("Create", ctx, mock.AnythingOfType("domain.Delivery")).Return(domain.Delivery{ID: "e1"}, nil)
	f.drafts.On("Save", ctx, mock.AnythingOfType("domain.DeliveryDraft")).Return(assert.AnError)
	f.deliveries.On("Delete", ctx, "e1").Return(nil)

	_, err := f.svc.SaveDraft(ctx, staff, "d1")

	require.Error(t, err)
	f.deliveries.AssertCalled(t, "Delete", ctx, "e1")
	f.stock.AssertNotCalled(t, "ApplyConsumption", mock.Anything, mock.Anything)
}

func TestSavedDraft_RejectsEditsAndDiscard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	draft := twoLotDraft()
	draft.SavedDeliveryID = "e1"
	f.drafts.On("Get", ctx, "d1").Return(draft, nil)

	_, err := f.svc.AddItem(ctx, staff, "d1", "p1")
	var conflict *apperror.ConflictError
	assert.ErrorAs(t, err, &conflict)

	err = f.svc.DiscardDraft(ctx, staff, "d1")
	assert.ErrorAs(t, err, &conflict)
	f.drafts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.drafts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSaveDraft_StaleStockRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.withStock(ctx, 5)
	draft := domain.DeliveryDraft{ID: "d1", Owner: "u1", Delivery: domain.Delivery{
		BeneficiaryID: "b1",
		Items:         []domain.LineItem{{ProductID: "p1", Lots: []domain.LotConsumption{{LotID: "l1", Quantity: 2}}}},
	}}
	f.drafts.On("Get", ctx, "d1").Return(draft, nil)
	f.beneficiaries.On("GetBeneficiaryByID", ctx, "b1").Return(domain.Beneficiary{ID: "b1", Active: true}, nil)
	f.stock.On("ValidateConsumption", ctx, map[string]int{"l1": 2}).
		Return(apperror.NewInsufficientStockError("p1", "O lote l1 só tem 1 unidades."))

	_, err := f.svc.SaveDraft(ctx, staff, "d1")

	assert.True(t, apperror.IsCapacity(err))
	f.deliveries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.stock.AssertNotCalled(t, "ApplyConsumption", mock.Anything, mock.Anything)
	assert.Equal(t, []string{apperror.CapacityInsufficientStock}, f.metrics.rejected)
}

func TestSaveDraft_EmptyDraftInvalid(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.withStock(ctx, 5)
	f.drafts.On("Get", ctx, "d1").Return(domain.DeliveryDraft{ID: "d1", Owner: "u1", Delivery: domain.Delivery{BeneficiaryID: "b1"}}, nil)

	_, err := f.svc.SaveDraft(ctx, staff, "d1")

	assert.True(t, apperror.IsValidation(err))
}

func TestFinishDelivery_CompletesRequest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	d := domain.Delivery{ID: "e1", RequestID: "r1", BeneficiaryID: "b1", Status: domain.DeliveryInProgress}
	f.deliveries.On("FindByID", ctx, "e1").Return(d, nil)
	f.deliveries.On("Update", ctx, mock.MatchedBy(func(d domain.Delivery) bool {
		return d.Status == domain.DeliveryDone && d.FinishedAt != nil
	})).Return(nil)
	f.requests.On("Complete", ctx, staff, "r1").Return(domain.Request{ID: "r1", Status: domain.RequestDone}, nil)

	finished, err := f.svc.FinishDelivery(ctx, staff, "e1")

	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryDone, finished.Status)
	f.requests.AssertExpectations(t)
}

func TestFinishDelivery_AlreadyDone(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.deliveries.On("FindByID", ctx, "e1").Return(domain.Delivery{ID: "e1", Status: domain.DeliveryDone}, nil)

	_, err := f.svc.FinishDelivery(ctx, staff, "e1")

	var transition *apperror.InvalidTransitionError
	assert.ErrorAs(t, err, &transition)
	f.deliveries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestListDeliveries_UnknownStatus(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ListDeliveries(context.Background(), "PERDIDA")

	assert.True(t, apperror.IsValidation(err))
}
