package stockservice

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
	"lojasocial/internal/pkg/logger"
)

// LotRepository define o contrato que o Serviço de Stock espera da persistência de lotes.
type LotRepository interface {
	CreateLot(ctx context.Context, lot domain.StockLot) (domain.StockLot, error)
	GetLot(ctx context.Context, id string) (domain.StockLot, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.StockLot, error)
	ListAll(ctx context.Context) ([]domain.StockLot, error)
	SetLotQuantity(ctx context.Context, id string, quantity int) error
	DeleteLot(ctx context.Context, id string) error
}

// ProductRepository é a parte do repositório de produtos de que o stock precisa.
// SetTotalQuantity só é chamado a partir deste serviço.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (domain.Product, error)
	SetTotalQuantity(ctx context.Context, id string, total int) error
}

// Metrics recebe os eventos de stock relevantes para observabilidade.
type Metrics interface {
	ExpiredLotsRemoved(n int)
}

type nopMetrics struct{}

func (nopMetrics) ExpiredLotsRemoved(int) {}

// Service agrega os lotes de cada produto e mantém a projeção quantidadeTotal.
type Service struct {
	lots     LotRepository
	products ProductRepository
	loc      *time.Location
	now      func() time.Time
	metrics  Metrics
	logger   logger.Logger
}

// NewService cria o serviço. loc define o fuso do "hoje" usado na validade dos lotes.
func NewService(lots LotRepository, products ProductRepository, loc *time.Location, logger logger.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{lots: lots, products: products, loc: loc, now: time.Now, metrics: nopMetrics{}, logger: logger}
}

// WithClock substitui o relógio. Usado nos testes.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithMetrics liga as métricas de stock.
func (s *Service) WithMetrics(m Metrics) *Service {
	if m != nil {
		s.metrics = m
	}
	return s
}

// Today devolve a data de referência da validade dos lotes.
func (s *Service) Today() domain.Date {
	return domain.DateOf(s.now(), s.loc)
}

// AddLot regista um lote novo para um produto existente e recalcula o total.
func (s *Service) AddLot(ctx context.Context, productID string, lot domain.StockLot) (domain.StockLot, error) {
	s.logger.Debug("Iniciando AddLot no serviço.", map[string]interface{}{"product_id": productID, "quantity": lot.Quantity})

	if productID == "" {
		return domain.StockLot{}, apperror.NewValidationError("O ID do produto é obrigatório.")
	}
	if lot.Quantity <= 0 {
		return domain.StockLot{}, apperror.NewValidationError("A quantidade do lote deve ser positiva.")
	}
	lot.ExpiryDate = strings.TrimSpace(lot.ExpiryDate)
	if lot.ExpiryDate != "" {
		d, err := domain.ParseDate(lot.ExpiryDate)
		if err != nil {
			return domain.StockLot{}, apperror.NewValidationError("Validade: " + err.Error())
		}
		lot.ExpiryDate = d.String()
	}
	lot.EntryDate = strings.TrimSpace(lot.EntryDate)
	if lot.EntryDate == "" {
		lot.EntryDate = s.Today().String()
	} else {
		d, err := domain.ParseDate(lot.EntryDate)
		if err != nil {
			return domain.StockLot{}, apperror.NewValidationError("Data de entrada: " + err.Error())
		}
		lot.EntryDate = d.String()
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return domain.StockLot{}, err
	}

	lot.ProductID = productID
	lot.CreatedAt = s.now().UTC()
	created, err := s.lots.CreateLot(ctx, lot)
	if err != nil {
		return domain.StockLot{}, err
	}
	if _, err := s.RecomputeByID(ctx, productID); err != nil {
		return domain.StockLot{}, err
	}

	s.logger.Info("Lote criado com sucesso.", map[string]interface{}{"product_id": productID, "lot_id": created.ID})
	return created, nil
}

// DeleteLot apaga um lote e recalcula o total do produto dono.
func (s *Service) DeleteLot(ctx context.Context, lotID string) error {
	if lotID == "" {
		return apperror.NewValidationError("O ID do lote é obrigatório.")
	}
	lot, err := s.lots.GetLot(ctx, lotID)
	if err != nil {
		return err
	}
	if err := s.lots.DeleteLot(ctx, lotID); err != nil {
		return err
	}
	_, err = s.RecomputeByID(ctx, lot.ProductID)
	return err
}

// ListLots devolve todos os lotes de um produto, incluindo os expirados, pela ordem FEFO.
func (s *Service) ListLots(ctx context.Context, productID string) ([]domain.StockLot, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	lots, err := s.lots.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := SortFEFO(lots); err != nil {
		return nil, err
	}
	return lots, nil
}

// ClearExpired apaga os lotes do produto com validade anterior a hoje e devolve quantos apagou.
// Nunca altera os lotes que sobrevivem.
func (s *Service) ClearExpired(ctx context.Context, productID string) (int, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return 0, err
	}
	lots, err := s.lots.ListByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	expired, err := ExpiredLots(lots, s.Today())
	if err != nil {
		return 0, err
	}
	for _, lot := range expired {
		if err := s.lots.DeleteLot(ctx, lot.ID); err != nil && !apperror.IsNotFound(err) {
			return 0, err
		}
	}
	if _, err := s.RecomputeByID(ctx, productID); err != nil {
		return 0, err
	}

	s.metrics.ExpiredLotsRemoved(len(expired))
	s.logger.Info("Lotes expirados removidos.", map[string]interface{}{"product_id": productID, "removed": len(expired)})
	return len(expired), nil
}

// Refresh recalcula o total de p com os lotes atuais. Só grava quando o valor mudou.
func (s *Service) Refresh(ctx context.Context, p domain.Product) (domain.Product, error) {
	lots, err := s.lots.ListByProduct(ctx, p.ID)
	if err != nil {
		return domain.Product{}, err
	}
	return s.apply(ctx, p, lots)
}

// RefreshAll recalcula vários produtos com uma única leitura de lotes.
func (s *Service) RefreshAll(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	all, err := s.lots.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string][]domain.StockLot)
	for _, lot := range all {
		byProduct[lot.ProductID] = append(byProduct[lot.ProductID], lot)
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		refreshed, err := s.apply(ctx, p, byProduct[p.ID])
		if err != nil {
			return nil, err
		}
		out = append(out, refreshed)
	}
	return out, nil
}

// RecomputeByID recalcula o total do produto id.
func (s *Service) RecomputeByID(ctx context.Context, productID string) (domain.Product, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	return s.Refresh(ctx, p)
}

func (s *Service) apply(ctx context.Context, p domain.Product, lots []domain.StockLot) (domain.Product, error) {
	total, err := ValidQuantity(lots, s.Today())
	if err != nil {
		s.logger.Error("Lotes inconsistentes no produto.", err)
		return domain.Product{}, err
	}
	if total != p.TotalQuantity {
		if err := s.products.SetTotalQuantity(ctx, p.ID, total); err != nil {
			return domain.Product{}, err
		}
		s.logger.Debug("quantidadeTotal recalculada.", map[string]interface{}{"product_id": p.ID, "old": p.TotalQuantity, "new": total})
		p.TotalQuantity = total
	}
	return p, nil
}

// ConsumableLots devolve os lotes do produto que podem ser usados numa entrega, pela ordem FEFO.
func (s *Service) ConsumableLots(ctx context.Context, productID string) ([]domain.StockLot, error) {
	lots, err := s.lots.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ConsumableLots(lots, s.Today())
}

// ConsumableByProduct agrupa por produto os lotes consumíveis hoje, cada grupo pela ordem FEFO.
func (s *Service) ConsumableByProduct(ctx context.Context) (map[string][]domain.StockLot, error) {
	all, err := s.lots.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string][]domain.StockLot)
	for _, lot := range all {
		byProduct[lot.ProductID] = append(byProduct[lot.ProductID], lot)
	}
	today := s.Today()
	for productID, lots := range byProduct {
		consumable, err := ConsumableLots(lots, today)
		if err != nil {
			return nil, err
		}
		byProduct[productID] = consumable
	}
	return byProduct, nil
}

// AllLots devolve todos os lotes do store, incluindo os expirados.
func (s *Service) AllLots(ctx context.Context) ([]domain.StockLot, error) {
	return s.lots.ListAll(ctx)
}

// PurgeLots apaga todos os lotes restantes de um produto.
func (s *Service) PurgeLots(ctx context.Context, productID string) error {
	lots, err := s.lots.ListByProduct(ctx, productID)
	if err != nil {
		return err
	}
	for _, lot := range lots {
		if err := s.lots.DeleteLot(ctx, lot.ID); err != nil && !apperror.IsNotFound(err) {
			return err
		}
	}
	return nil
}

// ValidateConsumption confirma que cada lote ainda existe, não expirou e tem a quantidade pedida.
func (s *Service) ValidateConsumption(ctx context.Context, byLot map[string]int) error {
	today := s.Today()
	for _, lotID := range sortedKeys(byLot) {
		want := byLot[lotID]
		lot, err := s.lots.GetLot(ctx, lotID)
		if apperror.IsNotFound(err) {
			return apperror.NewInsufficientStockError("", fmt.Sprintf("O lote %s já não existe.", lotID))
		}
		if err != nil {
			return err
		}
		valid, err := IsValid(lot, today)
		if err != nil {
			return err
		}
		if !valid {
			return apperror.NewInsufficientStockError(lot.ProductID, fmt.Sprintf("O lote %s expirou.", lotID))
		}
		if lot.Quantity < want {
			return apperror.NewInsufficientStockError(lot.ProductID,
				fmt.Sprintf("O lote %s só tem %d unidades (pedidas %d).", lotID, lot.Quantity, want))
		}
	}
	return nil
}

// ApplyConsumption retira as quantidades dos lotes, apaga os que ficam vazios e
// recalcula os produtos afetados.
func (s *Service) ApplyConsumption(ctx context.Context, byLot map[string]int) error {
	touched := make(map[string]struct{})
	for _, lotID := range sortedKeys(byLot) {
		lot, err := s.lots.GetLot(ctx, lotID)
		if err != nil {
			return err
		}
		remaining := lot.Quantity - byLot[lotID]
		if remaining < 0 {
			return apperror.NewInsufficientStockError(lot.ProductID, fmt.Sprintf("O lote %s ficou sem stock.", lotID))
		}
		if remaining == 0 {
			err = s.lots.DeleteLot(ctx, lotID)
		} else {
			err = s.lots.SetLotQuantity(ctx, lotID, remaining)
		}
		if err != nil {
			return err
		}
		touched[lot.ProductID] = struct{}{}
	}
	for _, productID := range sortedKeys(touched) {
		if _, err := s.RecomputeByID(ctx, productID); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
