package productservice

import (
	"context"
	"fmt"
	"strings"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
	"lojasocial/internal/pkg/logger"
)

// ProductRepository define o contrato que este Serviço espera da camada de Persistência.
type ProductRepository interface {
	Save(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product domain.Product) error
	Delete(ctx context.Context, id string) error
}

// StockService recalcula a projeção quantidadeTotal a partir dos lotes.
type StockService interface {
	Refresh(ctx context.Context, p domain.Product) (domain.Product, error)
	RefreshAll(ctx context.Context, products []domain.Product) ([]domain.Product, error)
	PurgeLots(ctx context.Context, productID string) error
}

// Service gere o catálogo de produtos. O total de cada produto vem sempre do recálculo de stock.
type Service struct {
	repo   ProductRepository
	stock  StockService
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo ProductRepository, stock StockService, logger logger.Logger) *Service {
	return &Service{repo: repo, stock: stock, logger: logger}
}

// CreateProduct regista um produto novo, sem stock.
func (s *Service) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		s.logger.Warn("Produto rejeitado sem nome.", nil)
		return domain.Product{}, apperror.NewValidationError("O nome do produto é obrigatório.")
	}
	product.TotalQuantity = 0

	created, err := s.repo.Save(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("falha ao salvar produto no repositório: %w", err)
	}
	s.logger.Info("Produto criado.", map[string]interface{}{"id": created.ID, "nome": created.Name})
	return created, nil
}

// GetProductByID devolve o produto com o total recalculado para hoje.
func (s *Service) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, apperror.NewValidationError("O ID do produto é obrigatório.")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	return s.stock.Refresh(ctx, product)
}

// GetProducts lista o catálogo com os totais recalculados, filtrando por nome e stock.
func (s *Service) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err = s.stock.RefreshAll(ctx, products)
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(strings.TrimSpace(filter.Name))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if filter.InStockOnly && p.TotalQuantity <= 0 {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// UpdateProduct altera nome e descrição. quantidadeTotal enviado pelo cliente é ignorado.
func (s *Service) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == "" {
		return domain.Product{}, apperror.NewValidationError("O ID do produto é obrigatório para atualização.")
	}
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return domain.Product{}, apperror.NewValidationError("O nome do produto é obrigatório.")
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return s.GetProductByID(ctx, product.ID)
}

// DeleteProduct apaga um produto sem stock válido, juntamente com os lotes que restem.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return err
	}
	if product.TotalQuantity > 0 {
		s.logger.Warn("Remoção de produto com stock recusada.", map[string]interface{}{"id": id, "quantidadeTotal": product.TotalQuantity})
		return apperror.NewValidationError(fmt.Sprintf(
			"O produto %q ainda tem %d unidades válidas em stock e não pode ser apagado.", product.Name, product.TotalQuantity))
	}
	if err := s.stock.PurgeLots(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Produto apagado.", map[string]interface{}{"id": id})
	return nil
}
