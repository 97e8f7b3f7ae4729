package stockrepo

import (
	"context"
	"fmt"

	"lojasocial/internal/domain"
	"lojasocial/internal/errors"
	"lojasocial/internal/pkg/docstore"
	"lojasocial/internal/pkg/logger"
	"lojasocial/internal/repository/docrepo"
)

// Collection é o nome da coleção de lotes no store.
const Collection = "lotes"

// StockRepository guarda os lotes de stock. Um lote não é editado depois de criado:
// só o consumo de uma entrega guardada reduz a quantidade, e o resto é apagar.
type StockRepository struct {
	docs   *docrepo.Collection[domain.StockLot]
	logger logger.Logger
}

// NewStockRepository cria e retorna uma nova instância do Repositório de Lotes.
func NewStockRepository(store docstore.Store, log logger.Logger) *StockRepository {
	return &StockRepository{
		docs:   docrepo.New(store, Collection, func(l *domain.StockLot, id string) { l.ID = id }, log),
		logger: log,
	}
}

// CreateLot insere um lote novo.
func (r *StockRepository) CreateLot(ctx context.Context, lot domain.StockLot) (domain.StockLot, error) {
	lot.ID = ""
	return r.docs.Create(ctx, lot)
}

// GetLot busca um lote pelo ID.
func (r *StockRepository) GetLot(ctx context.Context, id string) (domain.StockLot, error) {
	lot, err := r.docs.Get(ctx, id)
	if errors.IsNotFound(err) {
		return domain.StockLot{}, errors.NewNotFoundError(fmt.Sprintf("Lote com ID %s não existe.", id))
	}
	return lot, err
}

// ListByProduct devolve todos os lotes de um produto, válidos ou expirados.
func (r *StockRepository) ListByProduct(ctx context.Context, productID string) ([]domain.StockLot, error) {
	r.logger.Debug("Buscando lotes do produto.", map[string]interface{}{"product_id": productID})
	return r.docs.Find(ctx, docstore.Query{Field: "produtoId", Value: productID, OrderBy: docstore.FieldCreatedAt})
}

// ListAll devolve todos os lotes.
func (r *StockRepository) ListAll(ctx context.Context) ([]domain.StockLot, error) {
	return r.docs.List(ctx)
}

// SetLotQuantity grava a quantidade restante de um lote após consumo.
func (r *StockRepository) SetLotQuantity(ctx context.Context, id string, quantity int) error {
	r.logger.Debug("Atualizando quantidade do lote.", map[string]interface{}{"lot_id": id, "quantity": quantity})
	return r.docs.Update(ctx, id, map[string]interface{}{"quantidade": quantity})
}

// DeleteLot apaga um lote.
func (r *StockRepository) DeleteLot(ctx context.Context, id string) error {
	err := r.docs.Delete(ctx, id)
	if errors.IsNotFound(err) {
		return errors.NewNotFoundError(fmt.Sprintf("Lote com ID %s não existe.", id))
	}
	return err
}
