package productrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lojasocial/internal/domain"
	"lojasocial/internal/errors"
	"lojasocial/internal/pkg/cache"
	"lojasocial/internal/pkg/docstore"
	"lojasocial/internal/pkg/logger"
	"lojasocial/internal/repository/docrepo"
)

// Collection é o nome da coleção de produtos no store.
const Collection = "produtos"

// Define a chave de cache para produtos.
const productCacheKey = "produto:%s"

// ProductRepository guarda o catálogo de produtos, com cache-aside em Redis na leitura por ID.
type ProductRepository struct {
	docs     *docrepo.Collection[domain.Product]
	Cache    cache.Client
	CacheTTL time.Duration
	logger   logger.Logger
}

// NewProductRepository cria o repositório. Aqui injetamos o store e o cache.
func NewProductRepository(store docstore.Store, cacheClient cache.Client, cacheTTL time.Duration, log logger.Logger) *ProductRepository {
	return &ProductRepository{
		docs:     docrepo.New(store, Collection, func(p *domain.Product, id string) { p.ID = id }, log),
		Cache:    cacheClient,
		CacheTTL: cacheTTL,
		logger:   log,
	}
}

// Save persiste um novo produto. O total parte sempre de zero.
func (r *ProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	now := time.Now().UTC()
	product.ID = ""
	product.TotalQuantity = 0
	product.CreatedAt = now
	product.UpdatedAt = now
	return r.docs.Create(ctx, product)
}

// FindByID busca um produto pelo ID, utilizando a estratégia Cache-Aside.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	key := fmt.Sprintf(productCacheKey, id)
	var product domain.Product

	// Cache HIT: devolve o produto desserializado; um valor inválido segue para o store.
	cachedData, err := r.Cache.Get(ctx, key)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &product) == nil {
			r.logger.Debug("Produto servido pela cache.", map[string]interface{}{"id": id})
			return product, nil
		}
	} else if err != cache.ErrCacheMiss {
		r.logger.Warn("Falha ao ler do cache Redis.", map[string]interface{}{"id": id, "error": err.Error()})
	}

	product, err = r.docs.Get(ctx, id)
	if errors.IsNotFound(err) {
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe.", id))
	}
	if err != nil {
		return domain.Product{}, err
	}

	// Cache-aside (WRITE): populamos o cache para futuras leituras.
	if productJSON, marshalErr := json.Marshal(product); marshalErr == nil {
		if err := r.Cache.Set(ctx, key, productJSON, r.CacheTTL); err != nil {
			r.logger.Warn("Falha ao escrever no cache Redis.", map[string]interface{}{"id": id, "error": err.Error()})
		}
	}
	return product, nil
}

// FindAll lista os produtos por nome.
func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	return r.docs.Find(ctx, docstore.Query{OrderBy: "nome"})
}

// Update altera nome e descrição. O total não é tocado aqui.
func (r *ProductRepository) Update(ctx context.Context, product domain.Product) error {
	err := r.docs.Update(ctx, product.ID, map[string]interface{}{
		"nome":         product.Name,
		"descricao":    product.Description,
		"atualizadoEm": time.Now().UTC(),
	})
	if errors.IsNotFound(err) {
		return errors.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe.", product.ID))
	}
	if err != nil {
		return err
	}
	r.invalidate(ctx, product.ID)
	return nil
}

// SetTotalQuantity grava a projeção quantidadeTotal. Só o recálculo de stock a deve chamar.
func (r *ProductRepository) SetTotalQuantity(ctx context.Context, id string, total int) error {
	err := r.docs.Update(ctx, id, map[string]interface{}{
		"quantidadeTotal": total,
		"atualizadoEm":    time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.docs.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *ProductRepository) invalidate(ctx context.Context, id string) {
	if err := r.Cache.Delete(ctx, fmt.Sprintf(productCacheKey, id)); err != nil {
		r.logger.Warn("Falha ao invalidar cache de produto.", map[string]interface{}{"id": id, "error": err.Error()})
	}
}
