package stockservice

import (
	"fmt"
	"sort"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
)

// lotExpiry devolve a validade do lote; ok é falso para lotes que não expiram.
func lotExpiry(lot domain.StockLot) (expiry domain.Date, ok bool, err error) {
	if !lot.HasExpiry() {
		return domain.Date{}, false, nil
	}
	expiry, err = domain.ParseDate(lot.ExpiryDate)
	if err != nil {
		return domain.Date{}, false, apperror.NewValidationError(
			fmt.Sprintf("Integridade de dados: lote %s com validade inválida %q.", lot.ID, lot.ExpiryDate))
	}
	return expiry, true, nil
}

// IsValid indica se o lote ainda pode ser consumido em today: sem validade, ou validade >= today.
func IsValid(lot domain.StockLot, today domain.Date) (bool, error) {
	expiry, ok, err := lotExpiry(lot)
	if err != nil {
		return false, err
	}
	return !ok || !expiry.Before(today), nil
}

// ValidQuantity soma as quantidades dos lotes não expirados em today.
// Um lote com quantidade negativa ou validade ilegível é um erro de integridade.
func ValidQuantity(lots []domain.StockLot, today domain.Date) (int, error) {
	total := 0
	for _, lot := range lots {
		if lot.Quantity < 0 {
			return 0, apperror.NewValidationError(
				fmt.Sprintf("Integridade de dados: lote %s com quantidade negativa (%d).", lot.ID, lot.Quantity))
		}
		valid, err := IsValid(lot, today)
		if err != nil {
			return 0, err
		}
		if valid {
			total += lot.Quantity
		}
	}
	return total, nil
}

// ExpiredLots devolve os lotes com validade estritamente anterior a today.
func ExpiredLots(lots []domain.StockLot, today domain.Date) ([]domain.StockLot, error) {
	var expired []domain.StockLot
	for _, lot := range lots {
		valid, err := IsValid(lot, today)
		if err != nil {
			return nil, err
		}
		if !valid {
			expired = append(expired, lot)
		}
	}
	return expired, nil
}

// ConsumableLots devolve os lotes válidos com quantidade, pela ordem FEFO.
func ConsumableLots(lots []domain.StockLot, today domain.Date) ([]domain.StockLot, error) {
	out := make([]domain.StockLot, 0, len(lots))
	for _, lot := range lots {
		if lot.Quantity <= 0 {
			continue
		}
		valid, err := IsValid(lot, today)
		if err != nil {
			return nil, err
		}
		if valid {
			out = append(out, lot)
		}
	}
	if err := SortFEFO(out); err != nil {
		return nil, err
	}
	return out, nil
}

// SortFEFO ordena os lotes pelo primeiro a expirar: validade mais próxima primeiro,
// lotes sem validade no fim, empate pela data de entrada e depois pelo ID.
func SortFEFO(lots []domain.StockLot) error {
	type key struct {
		expiry domain.Date
		has    bool
	}
	keys := make(map[string]key, len(lots))
	for _, lot := range lots {
		expiry, ok, err := lotExpiry(lot)
		if err != nil {
			return err
		}
		keys[lot.ID] = key{expiry: expiry, has: ok}
	}

	sort.SliceStable(lots, func(i, j int) bool {
		a, b := keys[lots[i].ID], keys[lots[j].ID]
		if a.has != b.has {
			return a.has
		}
		if a.has && !a.expiry.Equal(b.expiry) {
			return a.expiry.Before(b.expiry)
		}
		if lots[i].EntryDate != lots[j].EntryDate {
			return lots[i].EntryDate < lots[j].EntryDate
		}
		return lots[i].ID < lots[j].ID
	})
	return nil
}
