package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lojasocial/internal/domain"
)

func TestBuild(t *testing.T) {
	today, err := domain.ParseDate("2025-01-01")
	require.NoError(t, err)

	products := []domain.Product{{ID: "p1", Name: "Leite", TotalQuantity: 7}}
	lots := []domain.StockLot{
		{ID: "velho", ProductID: "p1", Quantity: 3, ExpiryDate: "2024-12-31", EntryDate: "2024-12-01"},
		{ID: "tarde", ProductID: "p1", Quantity: 5, ExpiryDate: "2025-03-01", EntryDate: "2024-12-01"},
		{ID: "cedo", ProductID: "p1", Quantity: 2, ExpiryDate: "2025-01-15", EntryDate: "2024-12-01"},
	}

	f, err := Build(products, lots, today)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{productsSheet, lotsSheet}, f.GetSheetList())

	rows, err := f.GetRows(productsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Leite", "", "7", "3", "2025-01-15"}, rows[1])

	lotRows, err := f.GetRows(lotsSheet)
	require.NoError(t, err)
	require.Len(t, lotRows, 4)
	assert.Equal(t, "velho", lotRows[1][1])
	assert.Equal(t, "Expirado", lotRows[1][6])
	assert.Equal(t, "cedo", lotRows[2][1])
	assert.Equal(t, "Válido", lotRows[2][6])
}
