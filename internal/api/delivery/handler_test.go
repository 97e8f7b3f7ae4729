package delivery_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lojasocial/internal/api/delivery"
	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
	"lojasocial/internal/pkg/logger"
	"lojasocial/internal/pkg/middleware"
	"lojasocial/internal/service/deliveryservice"
)

type MockDeliveryService struct{ mock.Mock }

func (m *MockDeliveryService) view(args mock.Arguments) (deliveryservice.DraftView, error) {
	return args.Get(0).(deliveryservice.DraftView), args.Error(1)
}

func (m *MockDeliveryService) NewDraft(ctx context.Context, s domain.Session, in deliveryservice.NewDraftInput) (deliveryservice.DraftView, error) {
	return m.view(m.Called(ctx, s, in))
}
func (m *MockDeliveryService) GetDraft(ctx context.Context, s domain.Session, id string) (deliveryservice.DraftView, error) {
	return m.view(m.Called(ctx, s, id))
}
func (m *MockDeliveryService) SetBeneficiary(ctx context.Context, s domain.Session, id, b string) (deliveryservice.DraftView, error) {
	return m.view(m.Called(ctx, s, id, b))
}
func (m *MockDeliveryService) AddItem(ctx context.Context, s domain.Session, id, p string) (deliveryservice.DraftView, error) {
	return m.view(m.Called(ctx, s, id, p))
}
func (m *MockDeliveryService) IncreaseQuantity(ctx context.Context, s domain.Session, id, p string) (deliveryservice.DraftView, error) {
	return m.view(m.Called(ctx, s, id, p))
}
func (m *MockDeliveryService) DecreaseQuantity(ctx context.Context, s domain.Session, id, p string) (deliveryservice.DraftView, error) {
	return m.view(m.Called(ctx, s, id, p))
}
func (m *MockDeliveryService) RemoveItem(ctx context.Context, s domain.Session, id, p string) (deliveryservice.DraftView, error) {
	return m.view(m.Called(ctx, s, id, p))
}
func (m *MockDeliveryService) DiscardDraft(ctx context.Context, s domain.Session, id string) error {
	return m.Called(ctx, s, id).Error(0)
}
func (m *MockDeliveryService) SaveDraft(ctx context.Context, s domain.Session, id string) (domain.Delivery, error) {
	args := m.Called(ctx, s, id)
	return args.Get(0).(domain.Delivery), args.Error(1)
}
func (m *MockDeliveryService) GetDelivery(ctx context.Context, id string) (domain.Delivery, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Delivery), args.Error(1)
}
func (m *MockDeliveryService) ListDeliveries(ctx context.Context, status string) ([]domain.Delivery, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Delivery), args.Error(1)
}
func (m *MockDeliveryService) FinishDelivery(ctx context.Context, s domain.Session, id string) (domain.Delivery, error) {
	args := m.Called(ctx, s, id)
	return args.Get(0).(domain.Delivery), args.Error(1)
}

var staff = domain.Session{UserID: "u1", Email: "ana@loja.pt", Role: domain.RoleStaff}

func withSession(req *http.Request) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.SessionKey, staff))
}

func TestAddItemHandler_ReturnsDraft(t *testing.T) {
	svc := new(MockDeliveryService)
	h := delivery.NewHandler(svc, logger.NewNop())
	view := deliveryservice.DraftView{Draft: domain.DeliveryDraft{ID: "r1", Owner: "u1"}}
	svc.On("AddItem", mock.Anything, staff, "r1", "p1").Return(view, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/v1/rascunhos/r1/itens", strings.NewReader(`{"produtoId":"p1"}`)))
	req.SetPathValue("id", "r1")
	rec := httptest.NewRecorder()
	h.AddItemHandler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got deliveryservice.DraftView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "r1", got.Draft.ID)
	svc.AssertExpectations(t)
}

func TestAddItemHandler_LimitReachedIs422(t *testing.T) {
	svc := new(MockDeliveryService)
	h := delivery.NewHandler(svc, logger.NewNop())
	svc.On("AddItem", mock.Anything, staff, "r1", "p1").
		Return(deliveryservice.DraftView{}, apperror.NewLimitReachedError("p1", "quantidade máxima disponível já atingida."))

	req := withSession(httptest.NewRequest(http.MethodPost, "/v1/rascunhos/r1/itens", strings.NewReader(`{"produtoId":"p1"}`)))
	req.SetPathValue("id", "r1")
	rec := httptest.NewRecorder()
	h.AddItemHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body domain.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, apperror.CapacityLimitReached, body.Category)
}

func TestAddItemHandler_BadJSON(t *testing.T) {
	svc := new(MockDeliveryService)
	h := delivery.NewHandler(svc, logger.NewNop())

	req := withSession(httptest.NewRequest(http.MethodPost, "/v1/rascunhos/r1/itens", strings.NewReader(`{produto`)))
	rec := httptest.NewRecorder()
	h.AddItemHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNewDraftHandler_WithoutBodyOpensManualDraft(t *testing.T) {
	svc := new(MockDeliveryService)
	h := delivery.NewHandler(svc, logger.NewNop())
	svc.On("NewDraft", mock.Anything, staff, deliveryservice.NewDraftInput{}).
		Return(deliveryservice.DraftView{Draft: domain.DeliveryDraft{ID: "r2"}}, nil)

	rec := httptest.NewRecorder()
	h.NewDraftHandler().ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodPost, "/v1/rascunhos", nil)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestSessionHandlers_RequireSession(t *testing.T) {
	svc := new(MockDeliveryService)
	h := delivery.NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.SaveDraftHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/rascunhos/r1/guardar", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDiscardDraftHandler_NoContent(t *testing.T) {
	svc := new(MockDeliveryService)
	h := delivery.NewHandler(svc, logger.NewNop())
	svc.On("DiscardDraft", mock.Anything, staff, "r1").Return(nil)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/v1/rascunhos/r1", nil))
	req.SetPathValue("id", "r1")
	rec := httptest.NewRecorder()
	h.DiscardDraftHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestListDeliveriesHandler_PassesStatusFilter(t *testing.T) {
	svc := new(MockDeliveryService)
	h := delivery.NewHandler(svc, logger.NewNop())
	svc.On("ListDeliveries", mock.Anything, "TERMINADO").
		Return([]domain.Delivery{{ID: "e1", Status: domain.DeliveryDone}}, nil)

	rec := httptest.NewRecorder()
	h.ListDeliveriesHandler(rec, httptest.NewRequest(http.MethodGet, "/v1/entregas?estado=TERMINADO", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"e1"`)
}
