package deliveryservice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
	"lojasocial/internal/service/deliveryservice"
)

func newBuilder(lots map[string][]domain.StockLot, products ...domain.Product) *deliveryservice.Builder {
	return deliveryservice.NewBuilder(domain.Delivery{Status: domain.DeliveryInProgress}, false, products, lots)
}

func capacityKind(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperror.IsCapacity(err), "esperado erro de capacidade, obtido %v", err)
	var ce *apperror.CapacityError
	require.ErrorAs(t, err, &ce)
	return ce.Kind
}

func TestBuilder_ThreeUnitCeiling(t *testing.T) {
	p := domain.Product{ID: "p", Name: "Arroz"}
	b := newBuilder(map[string][]domain.StockLot{"p": {{ID: "l1", ProductID: "p", Quantity: 3}}}, p)

	for i := 0; i < 3; i++ {
		require.NoError(t, b.AddItem("p"))
	}
	assert.Equal(t, 3, b.Delivery().CommittedQuantity("p"))
	assert.Equal(t, 0, b.Available("p"))

	before := b.Delivery()
	assert.Equal(t, apperror.CapacityLimitReached, capacityKind(t, b.AddItem("p")))
	assert.Equal(t, before, b.Delivery(), "limite atingido não altera a entrega")

	b.RemoveItem("p")
	assert.Empty(t, b.Delivery().Items)
	assert.Equal(t, 3, b.Available("p"))

	require.NoError(t, b.AddItem("p"))
	assert.Equal(t, 1, b.Delivery().CommittedQuantity("p"))
	assert.Equal(t, 2, b.Available("p"))
}

func TestBuilder_AddWithZeroCeilingSignalsInsufficientStock(t *testing.T) {
	p := domain.Product{ID: "p", Name: "Massa"}
	b := newBuilder(map[string][]domain.StockLot{}, p)

	assert.Equal(t, apperror.CapacityInsufficientStock, capacityKind(t, b.AddItem("p")))
	assert.Empty(t, b.Delivery().Items)

	assert.Equal(t, apperror.CapacityInsufficientStock, capacityKind(t, b.AddItem("desconhecido")))
	assert.Empty(t, b.Delivery().Items)
}

func TestBuilder_IncreaseAtCeilingIsNoOp(t *testing.T) {
	p := domain.Product{ID: "p", Name: "Leite"}
	b := newBuilder(map[string][]domain.StockLot{"p": {{ID: "l1", ProductID: "p", Quantity: 1}}}, p)
	require.NoError(t, b.AddItem("p"))

	before := b.Delivery()
	assert.Equal(t, apperror.CapacityLimitReached, capacityKind(t, b.IncreaseQuantity("p")))
	assert.Equal(t, before, b.Delivery())
}

func TestBuilder_DecreaseFloorIsOne(t *testing.T) {
	p := domain.Product{ID: "p", Name: "Óleo"}
	b := newBuilder(map[string][]domain.StockLot{"p": {{ID: "l1", ProductID: "p", Quantity: 5}}}, p)
	require.NoError(t, b.AddItem("p"))
	require.NoError(t, b.IncreaseQuantity("p"))

	require.NoError(t, b.DecreaseQuantity("p"))
	assert.Equal(t, 1, b.Delivery().CommittedQuantity("p"))

	require.NoError(t, b.DecreaseQuantity("p"))
	assert.Equal(t, 1, b.Delivery().CommittedQuantity("p"))
	require.Len(t, b.Delivery().Items, 1)
}

func TestBuilder_UnknownLineItem(t *testing.T) {
	b := newBuilder(nil)

	assert.True(t, apperror.IsNotFound(b.IncreaseQuantity("x")))
	assert.True(t, apperror.IsNotFound(b.DecreaseQuantity("x")))
	b.RemoveItem("x")
}

func TestBuilder_AllocatesFEFOAcrossLots(t *testing.T) {
	p := domain.Product{ID: "p", Name: "Iogurte"}
	lots := map[string][]domain.StockLot{"p": {
		{ID: "cedo", ProductID: "p", Quantity: 2, ExpiryDate: "2025-01-10"},
		{ID: "tarde", ProductID: "p", Quantity: 3, ExpiryDate: "2025-02-10"},
	}}
	b := newBuilder(lots, p)

	require.NoError(t, b.AddItem("p"))
	require.NoError(t, b.IncreaseQuantity("p"))
	require.NoError(t, b.IncreaseQuantity("p"))

	d := b.Delivery()
	item, _ := d.Item("p")
	require.NotNil(t, item)
	assert.Equal(t, []domain.LotConsumption{{LotID: "cedo", Quantity: 2}, {LotID: "tarde", Quantity: 1}}, item.Lots)

	require.NoError(t, b.DecreaseQuantity("p"))
	d = b.Delivery()
	item, _ = d.Item("p")
	assert.Equal(t, []domain.LotConsumption{{LotID: "cedo", Quantity: 2}}, item.Lots)
	assert.Equal(t, map[string]int{"cedo": 2}, d.CommittedByLot())
}

func TestBuilder_CandidatesSubtractCommitted(t *testing.T) {
	a := domain.Product{ID: "a", Name: "Arroz"}
	f := domain.Product{ID: "f", Name: "Feijão"}
	b := newBuilder(map[string][]domain.StockLot{
		"a": {{ID: "la", ProductID: "a", Quantity: 4}},
		"f": {{ID: "lf", ProductID: "f", Quantity: 1}},
	}, a, f)
	require.NoError(t, b.AddItem("a"))
	require.NoError(t, b.AddItem("a"))

	cands := b.Candidates()
	require.Len(t, cands, 2)
	assert.Equal(t, 4, cands[0].Ceiling)
	assert.Equal(t, 2, cands[0].Available)
	assert.Equal(t, 1, cands[1].Available)
}

func TestBuilder_Validate(t *testing.T) {
	p := domain.Product{ID: "p", Name: "Arroz"}
	b := newBuilder(map[string][]domain.StockLot{"p": {{ID: "l", ProductID: "p", Quantity: 1}}}, p)

	assert.True(t, apperror.IsValidation(b.Validate()))
	require.NoError(t, b.SetBeneficiary("b1"))
	assert.True(t, apperror.IsValidation(b.Validate()), "sem itens")
	require.NoError(t, b.AddItem("p"))
	assert.NoError(t, b.Validate())
}

func TestBuilder_LockedBeneficiary(t *testing.T) {
	b := deliveryservice.NewBuilder(domain.Delivery{BeneficiaryID: "b1"}, true, nil, nil)

	err := b.SetBeneficiary("b2")

	assert.Error(t, err)
	assert.Equal(t, "b1", b.Delivery().BeneficiaryID)
}

func TestBuilder_DoesNotAliasInputDelivery(t *testing.T) {
	p := domain.Product{ID: "p", Name: "Arroz"}
	d := domain.Delivery{Items: []domain.LineItem{{ProductID: "p", Lots: []domain.LotConsumption{{LotID: "l", Quantity: 1}}}}}
	b := deliveryservice.NewBuilder(d, false, []domain.Product{p}, map[string][]domain.StockLot{"p": {{ID: "l", ProductID: "p", Quantity: 5}}})

	require.NoError(t, b.IncreaseQuantity("p"))

	assert.Equal(t, 1, d.Items[0].Lots[0].Quantity)
	assert.Equal(t, 2, b.Delivery().CommittedQuantity("p"))
}
