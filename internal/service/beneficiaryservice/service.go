package beneficiaryservice

import (
	"context"
	"strings"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
	"lojasocial/internal/pkg/logger"
)

// BeneficiaryRepository define o contrato que o Serviço de Beneficiários espera da camada de Persistência.
type BeneficiaryRepository interface {
	CreateBeneficiary(ctx context.Context, b domain.Beneficiary) (domain.Beneficiary, error)
	GetBeneficiaryByID(ctx context.Context, id string) (domain.Beneficiary, error)
	GetAllBeneficiaries(ctx context.Context) ([]domain.Beneficiary, error)
	GetActiveBeneficiaries(ctx context.Context) ([]domain.Beneficiary, error)
	UpdateBeneficiary(ctx context.Context, b domain.Beneficiary) (domain.Beneficiary, error)
	DeleteBeneficiary(ctx context.Context, id string) error
}

type Service struct {
	repo   BeneficiaryRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Beneficiários.
func NewService(repo BeneficiaryRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateBeneficiary regista um beneficiário. O ID é atribuído pelo store; um ID enviado é ignorado.
func (s *Service) CreateBeneficiary(ctx context.Context, b domain.Beneficiary) (domain.Beneficiary, error) {
	s.logger.Debug("Iniciando criação de beneficiário no serviço.", map[string]interface{}{"nome": b.Name})

	b = normalize(b)
	if err := validate(b); err != nil {
		s.logger.Warn("Falha na validação do beneficiário.", map[string]interface{}{"nome": b.Name, "error": err.Error()})
		return domain.Beneficiary{}, err
	}

	created, err := s.repo.CreateBeneficiary(ctx, b)
	if err != nil {
		s.logger.Error("Falha ao criar beneficiário no repositório.", err)
		return domain.Beneficiary{}, err
	}

	s.logger.Info("Beneficiário criado com sucesso.", map[string]interface{}{"id": created.ID})
	return created, nil
}

// GetBeneficiaryByID busca um beneficiário pelo ID.
func (s *Service) GetBeneficiaryByID(ctx context.Context, id string) (domain.Beneficiary, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Beneficiary{}, apperror.NewValidationError("O ID do beneficiário é obrigatório.")
	}
	return s.repo.GetBeneficiaryByID(ctx, id)
}

// GetBeneficiaries lista os beneficiários; activeOnly restringe aos ativos.
func (s *Service) GetBeneficiaries(ctx context.Context, activeOnly bool) ([]domain.Beneficiary, error) {
	if activeOnly {
		return s.repo.GetActiveBeneficiaries(ctx)
	}
	return s.repo.GetAllBeneficiaries(ctx)
}

// UpdateBeneficiary atualiza um beneficiário existente. Exige ID.
func (s *Service) UpdateBeneficiary(ctx context.Context, b domain.Beneficiary) (domain.Beneficiary, error) {
	s.logger.Debug("Iniciando atualização de beneficiário no serviço.", map[string]interface{}{"id": b.ID})

	if strings.TrimSpace(b.ID) == "" {
		return domain.Beneficiary{}, apperror.NewValidationError("O ID do beneficiário é obrigatório para atualização.")
	}
	b = normalize(b)
	if err := validate(b); err != nil {
		s.logger.Warn("Falha na validação do beneficiário para atualização.", map[string]interface{}{"id": b.ID, "error": err.Error()})
		return domain.Beneficiary{}, err
	}

	current, err := s.repo.GetBeneficiaryByID(ctx, b.ID)
	if err != nil {
		return domain.Beneficiary{}, err
	}
	b.CreatedAt = current.CreatedAt

	updated, err := s.repo.UpdateBeneficiary(ctx, b)
	if err != nil {
		s.logger.Error("Falha ao atualizar beneficiário no repositório.", err)
		return domain.Beneficiary{}, err
	}

	s.logger.Info("Beneficiário atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// DeleteBeneficiary remove um beneficiário. Exige ID.
func (s *Service) DeleteBeneficiary(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperror.NewValidationError("O ID do beneficiário é obrigatório para exclusão.")
	}
	if err := s.repo.DeleteBeneficiary(ctx, id); err != nil {
		s.logger.Error("Falha ao apagar beneficiário no repositório.", err)
		return err
	}
	s.logger.Info("Beneficiário apagado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

func normalize(b domain.Beneficiary) domain.Beneficiary {
	b.Name = strings.TrimSpace(b.Name)
	b.TaxID = strings.TrimSpace(b.TaxID)
	b.Email = strings.TrimSpace(b.Email)
	b.Phone = strings.TrimSpace(b.Phone)
	return b
}

func validate(b domain.Beneficiary) error {
	if b.Name == "" {
		return apperror.NewValidationError("O nome do beneficiário é obrigatório.")
	}
	if b.Email != "" && !strings.Contains(b.Email, "@") {
		return apperror.NewValidationError("O email do beneficiário é inválido.")
	}
	return nil
}
