package deliveryservice

import (
	"fmt"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
)

// Candidate é um produto que pode entrar numa entrega.
// Ceiling é o stock válido do produto; Available desconta o que a entrega já comprometeu.
type Candidate struct {
	Product   domain.Product    `json:"produto"`
	Lots      []domain.StockLot `json:"lotes"`
	Ceiling   int               `json:"limite"`
	Available int               `json:"disponivel"`
}

type candidate struct {
	product domain.Product
	lots    []domain.StockLot // consumíveis, pela ordem FEFO
	ceiling int
}

// Builder acumula as linhas de uma entrega em construção contra o stock válido de cada produto.
// Erros de capacidade (stock insuficiente, limite atingido) deixam a entrega inalterada.
type Builder struct {
	delivery   domain.Delivery
	locked     bool
	candidates map[string]candidate
	order      []string
}

// NewBuilder cria o builder sobre d. lotsByProduct deve conter só lotes consumíveis, pela ordem FEFO.
func NewBuilder(d domain.Delivery, beneficiaryLocked bool, products []domain.Product, lotsByProduct map[string][]domain.StockLot) *Builder {
	items := make([]domain.LineItem, len(d.Items))
	for i, it := range d.Items {
		it.Lots = append([]domain.LotConsumption(nil), it.Lots...)
		items[i] = it
	}
	d.Items = items

	b := &Builder{
		delivery:   d,
		locked:     beneficiaryLocked,
		candidates: make(map[string]candidate, len(products)),
	}
	for _, p := range products {
		lots := lotsByProduct[p.ID]
		ceiling := 0
		for _, lot := range lots {
			ceiling += lot.Quantity
		}
		b.candidates[p.ID] = candidate{product: p, lots: lots, ceiling: ceiling}
		b.order = append(b.order, p.ID)
	}
	return b
}

// Delivery devolve o estado atual da entrega.
func (b *Builder) Delivery() domain.Delivery {
	return b.delivery
}

// Candidates devolve os produtos com a quantidade ainda disponível para esta entrega.
func (b *Builder) Candidates() []Candidate {
	out := make([]Candidate, 0, len(b.order))
	for _, id := range b.order {
		c := b.candidates[id]
		available := c.ceiling - b.delivery.CommittedQuantity(id)
		if available < 0 {
			available = 0
		}
		out = append(out, Candidate{Product: c.product, Lots: c.lots, Ceiling: c.ceiling, Available: available})
	}
	return out
}

// Available devolve o limite do produto menos as unidades já comprometidas nesta entrega.
func (b *Builder) Available(productID string) int {
	available := b.candidates[productID].ceiling - b.delivery.CommittedQuantity(productID)
	if available < 0 {
		return 0
	}
	return available
}

// SetBeneficiary associa o beneficiário. Falha se veio de um pedido.
func (b *Builder) SetBeneficiary(beneficiaryID string) error {
	if b.locked {
		return apperror.NewConflictError("O beneficiário de uma entrega criada a partir de um pedido não pode ser alterado.")
	}
	b.delivery.BeneficiaryID = beneficiaryID
	return nil
}

// AddItem junta uma unidade do produto. Se já é uma linha, equivale a IncreaseQuantity.
func (b *Builder) AddItem(productID string) error {
	c, ok := b.candidates[productID]
	if !ok || c.ceiling <= 0 {
		name := productID
		if ok {
			name = c.product.Name
		}
		return apperror.NewInsufficientStockError(productID, fmt.Sprintf("Sem stock válido para %s.", name))
	}
	if item, _ := b.delivery.Item(productID); item != nil {
		return b.IncreaseQuantity(productID)
	}

	lotID, ok := b.nextLot(c)
	if !ok {
		return apperror.NewInsufficientStockError(productID, fmt.Sprintf("Sem stock válido para %s.", c.product.Name))
	}
	b.delivery.Items = append(b.delivery.Items, domain.LineItem{
		ProductID:   productID,
		ProductName: c.product.Name,
		Lots:        []domain.LotConsumption{{LotID: lotID, Quantity: 1}},
	})
	return nil
}

// IncreaseQuantity junta uma unidade a uma linha existente, sem passar o limite do produto.
func (b *Builder) IncreaseQuantity(productID string) error {
	item, _ := b.delivery.Item(productID)
	if item == nil {
		return apperror.NewNotFoundError(fmt.Sprintf("O produto %s não está na entrega.", productID))
	}
	c := b.candidates[productID]
	if item.Quantity() >= c.ceiling {
		return apperror.NewLimitReachedError(productID,
			fmt.Sprintf("Limite atingido para %s: %d unidades disponíveis.", item.ProductName, c.ceiling))
	}
	lotID, ok := b.nextLot(c)
	if !ok {
		return apperror.NewLimitReachedError(productID,
			fmt.Sprintf("Limite atingido para %s.", item.ProductName))
	}
	for i := range item.Lots {
		if item.Lots[i].LotID == lotID {
			item.Lots[i].Quantity++
			return nil
		}
	}
	item.Lots = append(item.Lots, domain.LotConsumption{LotID: lotID, Quantity: 1})
	return nil
}

// DecreaseQuantity retira uma unidade, devolvendo-a ao último lote usado. Nunca desce abaixo de 1.
func (b *Builder) DecreaseQuantity(productID string) error {
	item, _ := b.delivery.Item(productID)
	if item == nil {
		return apperror.NewNotFoundError(fmt.Sprintf("O produto %s não está na entrega.", productID))
	}
	if item.Quantity() <= 1 {
		return nil
	}
	last := len(item.Lots) - 1
	item.Lots[last].Quantity--
	if item.Lots[last].Quantity == 0 {
		item.Lots = item.Lots[:last]
	}
	return nil
}

// RemoveItem apaga a linha do produto, se existir.
func (b *Builder) RemoveItem(productID string) {
	_, idx := b.delivery.Item(productID)
	if idx < 0 {
		return
	}
	b.delivery.Items = append(b.delivery.Items[:idx], b.delivery.Items[idx+1:]...)
}

// Validate confirma que a entrega pode ser guardada.
func (b *Builder) Validate() error {
	if b.delivery.BeneficiaryID == "" {
		return apperror.NewValidationError("Beneficiário não selecionado.")
	}
	if len(b.delivery.Items) == 0 {
		return apperror.NewValidationError("A entrega não tem itens.")
	}
	return nil
}

// nextLot escolhe o primeiro lote, pela ordem FEFO, com unidades ainda não comprometidas.
func (b *Builder) nextLot(c candidate) (string, bool) {
	committed := b.delivery.CommittedByLot()
	for _, lot := range c.lots {
		if lot.Quantity-committed[lot.ID] > 0 {
			return lot.ID, true
		}
	}
	return "", false
}
