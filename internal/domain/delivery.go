package domain

import (
	"time"

	apperror "lojasocial/internal/errors"
)

// DeliveryStatus é o estado de uma entrega.
type DeliveryStatus string

const (
	DeliveryInProgress DeliveryStatus = "EM_ANDAMENTO"
	DeliveryDone       DeliveryStatus = "TERMINADO"
)

// ParseDeliveryStatus valida s como estado de entrega.
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	switch DeliveryStatus(s) {
	case DeliveryInProgress, DeliveryDone:
		return DeliveryStatus(s), nil
	}
	return "", apperror.NewValidationError("Estado de entrega desconhecido: " + s)
}

// LotConsumption regista quanto de uma linha foi retirado de um lote.
type LotConsumption struct {
	LotID    string `json:"loteId"`
	Quantity int    `json:"quantidade"`
}

// LineItem é uma linha de uma entrega. O nome do produto é copiado para apresentação.
type LineItem struct {
	ProductID   string           `json:"produtoId"`
	ProductName string           `json:"nomeProduto"`
	Lots        []LotConsumption `json:"lotes"`
}

// Quantity é a soma das quantidades consumidas de todos os lotes da linha.
func (li LineItem) Quantity() int {
	total := 0
	for _, c := range li.Lots {
		total += c.Quantity
	}
	return total
}

// Delivery (Entrega) é um evento concreto de distribuição de stock a um beneficiário.
// Não possui beneficiário, pedido nem produtos; referencia-os por ID.
type Delivery struct {
	ID            string         `json:"id,omitempty"`
	RequestID     string         `json:"pedidoId,omitempty"`
	BeneficiaryID string         `json:"beneficiarioId"`
	Items         []LineItem     `json:"itens"`
	Status        DeliveryStatus `json:"estado"`
	CreatedBy     string         `json:"criadoPor,omitempty"`
	CreatedAt     time.Time      `json:"criadoEm"`
	FinishedAt    *time.Time     `json:"terminadoEm,omitempty"`
}

// Item devolve a linha de productID e o seu índice, ou -1.
func (d *Delivery) Item(productID string) (*LineItem, int) {
	for i := range d.Items {
		if d.Items[i].ProductID == productID {
			return &d.Items[i], i
		}
	}
	return nil, -1
}

// CommittedQuantity devolve as unidades já comprometidas com productID nesta entrega.
func (d Delivery) CommittedQuantity(productID string) int {
	item, _ := d.Item(productID)
	if item == nil {
		return 0
	}
	return item.Quantity()
}

// CommittedByLot soma, por lote, as unidades comprometidas em todas as linhas.
func (d Delivery) CommittedByLot() map[string]int {
	out := make(map[string]int)
	for _, item := range d.Items {
		for _, c := range item.Lots {
			out[c.LotID] += c.Quantity
		}
	}
	return out
}

// Finish passa a entrega a TERMINADO. A transição é definitiva.
func (d *Delivery) Finish(at time.Time) error {
	if d.Status != DeliveryInProgress {
		return apperror.NewInvalidTransitionError(string(d.Status), string(DeliveryDone))
	}
	d.Status = DeliveryDone
	d.FinishedAt = &at
	return nil
}

// DeliveryDraft é uma entrega em construção, ainda não guardada no store.
// Um rascunho criado a partir de um pedido tem o beneficiário bloqueado.
//
// Depois de a entrega ser criada no store, o rascunho guarda o ID da entrega e os lotes
// já descontados, para que uma nova gravação retome o desconto em vez de duplicar a entrega.
type DeliveryDraft struct {
	ID                string    `json:"id"`
	Delivery          Delivery  `json:"entrega"`
	BeneficiaryLocked bool      `json:"beneficiarioBloqueado"`
	Owner             string    `json:"dono"`
	UpdatedAt         time.Time `json:"atualizadoEm"`
	SavedDeliveryID   string    `json:"entregaId,omitempty"`
	ConsumedLots      []string  `json:"lotesDescontados,omitempty"`
}

// IsSaved indica se a entrega do rascunho já foi criada e só falta descontar stock.
func (d DeliveryDraft) IsSaved() bool { return d.SavedDeliveryID != "" }
