package campaignservice

import (
	"context"
	"strings"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
	"lojasocial/internal/pkg/logger"
)

// CampaignRepository define o contrato que o Serviço de Campanhas espera da camada de Persistência.
type CampaignRepository interface {
	CreateCampaign(ctx context.Context, c domain.Campaign) (domain.Campaign, error)
	GetCampaignByID(ctx context.Context, id string) (domain.Campaign, error)
	GetAllCampaigns(ctx context.Context) ([]domain.Campaign, error)
	UpdateCampaign(ctx context.Context, c domain.Campaign) (domain.Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error
}

type Service struct {
	repo   CampaignRepository
	logger logger.Logger
}

func NewService(repo CampaignRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateCampaign(ctx context.Context, c domain.Campaign) (domain.Campaign, error) {
	c, err := s.validate(c)
	if err != nil {
		return domain.Campaign{}, err
	}
	created, err := s.repo.CreateCampaign(ctx, c)
	if err != nil {
		return domain.Campaign{}, err
	}
	s.logger.Info("Campanha criada com sucesso.", map[string]interface{}{"id": created.ID, "nome": created.Name})
	return created, nil
}

func (s *Service) GetCampaignByID(ctx context.Context, id string) (domain.Campaign, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Campaign{}, apperror.NewValidationError("O ID da campanha é obrigatório.")
	}
	return s.repo.GetCampaignByID(ctx, id)
}

func (s *Service) GetCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return s.repo.GetAllCampaigns(ctx)
}

func (s *Service) UpdateCampaign(ctx context.Context, c domain.Campaign) (domain.Campaign, error) {
	if strings.TrimSpace(c.ID) == "" {
		return domain.Campaign{}, apperror.NewValidationError("O ID da campanha é obrigatório para atualização.")
	}
	c, err := s.validate(c)
	if err != nil {
		return domain.Campaign{}, err
	}
	current, err := s.repo.GetCampaignByID(ctx, c.ID)
	if err != nil {
		return domain.Campaign{}, err
	}
	c.CreatedAt = current.CreatedAt
	return s.repo.UpdateCampaign(ctx, c)
}

func (s *Service) DeleteCampaign(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperror.NewValidationError("O ID da campanha é obrigatório para exclusão.")
	}
	return s.repo.DeleteCampaign(ctx, id)
}

// validate exige nome e datas de calendário válidas, com fim não anterior ao início.
// As datas são devolvidas na forma canónica AAAA-MM-DD.
func (s *Service) validate(c domain.Campaign) (domain.Campaign, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return c, apperror.NewValidationError("O nome da campanha é obrigatório.")
	}
	start, err := domain.ParseDate(strings.TrimSpace(c.StartDate))
	if err != nil {
		s.logger.Warn("Data de início inválida.", map[string]interface{}{"dataInicio": c.StartDate})
		return c, apperror.NewValidationError("Data de início: " + err.Error())
	}
	end, err := domain.ParseDate(strings.TrimSpace(c.EndDate))
	if err != nil {
		s.logger.Warn("Data de fim inválida.", map[string]interface{}{"dataFim": c.EndDate})
		return c, apperror.NewValidationError("Data de fim: " + err.Error())
	}
	if end.Before(start) {
		return c, apperror.NewValidationError("A data de fim não pode ser anterior à data de início.")
	}
	c.StartDate = start.String()
	c.EndDate = end.String()
	return c, nil
}
