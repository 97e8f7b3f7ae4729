package beneficiaryrepo

import (
	"context"
	"fmt"
	"time"

	"lojasocial/internal/domain"
	"lojasocial/internal/errors"
	"lojasocial/internal/pkg/docstore"
	"lojasocial/internal/pkg/logger"
	"lojasocial/internal/repository/docrepo"
)

// Collection é o nome da coleção de beneficiários no store.
const Collection = "beneficiarios"

// BeneficiaryRepository implementa as operações CRUD de beneficiários.
type BeneficiaryRepository struct {
	docs   *docrepo.Collection[domain.Beneficiary]
	logger logger.Logger
}

// NewBeneficiaryRepository cria e retorna uma nova instância do Repositório de Beneficiários.
func NewBeneficiaryRepository(store docstore.Store, log logger.Logger) *BeneficiaryRepository {
	return &BeneficiaryRepository{
		docs:   docrepo.New(store, Collection, func(b *domain.Beneficiary, id string) { b.ID = id }, log),
		logger: log,
	}
}

// CreateBeneficiary insere um novo beneficiário. O ID é atribuído pelo store.
func (r *BeneficiaryRepository) CreateBeneficiary(ctx context.Context, b domain.Beneficiary) (domain.Beneficiary, error) {
	r.logger.Debug("Iniciando CreateBeneficiary no repositório.", map[string]interface{}{"nome": b.Name})

	now := time.Now().UTC()
	b.ID = ""
	b.CreatedAt = now
	b.UpdatedAt = now
	return r.docs.Create(ctx, b)
}

// GetBeneficiaryByID busca um beneficiário pelo ID.
func (r *BeneficiaryRepository) GetBeneficiaryByID(ctx context.Context, id string) (domain.Beneficiary, error) {
	b, err := r.docs.Get(ctx, id)
	if errors.IsNotFound(err) {
		r.logger.Info("Beneficiário não encontrado.", map[string]interface{}{"id": id})
		return domain.Beneficiary{}, errors.NewNotFoundError(fmt.Sprintf("Beneficiário com ID %s não encontrado.", id))
	}
	return b, err
}

// GetAllBeneficiaries lista todos os beneficiários por nome.
func (r *BeneficiaryRepository) GetAllBeneficiaries(ctx context.Context) ([]domain.Beneficiary, error) {
	return r.docs.Find(ctx, docstore.Query{OrderBy: "nome"})
}

// GetActiveBeneficiaries lista os beneficiários ativos, usados nas entregas manuais.
func (r *BeneficiaryRepository) GetActiveBeneficiaries(ctx context.Context) ([]domain.Beneficiary, error) {
	return r.docs.Find(ctx, docstore.Query{Field: "ativo", Value: true, OrderBy: "nome"})
}

// UpdateBeneficiary substitui os dados de um beneficiário existente.
func (r *BeneficiaryRepository) UpdateBeneficiary(ctx context.Context, b domain.Beneficiary) (domain.Beneficiary, error) {
	r.logger.Debug("Iniciando UpdateBeneficiary no repositório.", map[string]interface{}{"id": b.ID})

	b.UpdatedAt = time.Now().UTC()
	err := r.docs.Set(ctx, b.ID, b)
	if errors.IsNotFound(err) {
		r.logger.Info("Beneficiário não encontrado para atualização.", map[string]interface{}{"id": b.ID})
		return domain.Beneficiary{}, errors.NewNotFoundError(fmt.Sprintf("Beneficiário com ID %s não encontrado para atualização.", b.ID))
	}
	if err != nil {
		return domain.Beneficiary{}, err
	}
	return b, nil
}

// DeleteBeneficiary apaga um beneficiário pelo ID.
func (r *BeneficiaryRepository) DeleteBeneficiary(ctx context.Context, id string) error {
	err := r.docs.Delete(ctx, id)
	if errors.IsNotFound(err) {
		r.logger.Info("Beneficiário não encontrado para exclusão.", map[string]interface{}{"id": id})
		return errors.NewNotFoundError(fmt.Sprintf("Beneficiário com ID %s não encontrado para exclusão.", id))
	}
	return err
}
