package domain

import (
	"time"
)

// Product representa a ficha mestre de um tipo de bem, independente de qualquer lote físico.
//
// TotalQuantity (quantidadeTotal) é uma projeção derivada dos lotes: soma das quantidades
// dos lotes não expirados na data de referência. É recalculada ao alterar lotes e em cada
// leitura; nenhum caminho de código além do recálculo de stock a escreve.
type Product struct {
	ID            string    `json:"id,omitempty"`
	Name          string    `json:"nome"`
	Description   string    `json:"descricao"`
	TotalQuantity int       `json:"quantidadeTotal"`
	CreatedAt     time.Time `json:"criadoEm"`
	UpdatedAt     time.Time `json:"atualizadoEm"`
}

// StockLot é um lote concreto de um Produto, com quantidade e validade próprias.
// Um lote pertence a exatamente um produto e não é editado: correções fazem-se
// apagando e voltando a criar. A única alteração de quantidade é o consumo por entregas.
type StockLot struct {
	ID         string    `json:"id,omitempty"`
	ProductID  string    `json:"produtoId"`
	Quantity   int       `json:"quantidade"`
	ExpiryDate string    `json:"validade,omitempty"` // AAAA-MM-DD; vazio = não expira
	EntryDate  string    `json:"dataEntrada"`        // AAAA-MM-DD
	CampaignID string    `json:"campanhaId,omitempty"`
	CreatedAt  time.Time `json:"criadoEm"`
}

// HasExpiry indica se o lote tem data de validade.
func (l StockLot) HasExpiry() bool { return l.ExpiryDate != "" }

// ProductFilter define os parâmetros de listagem de produtos.
type ProductFilter struct {
	Name        string
	InStockOnly bool
}
