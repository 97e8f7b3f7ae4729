package campaignrepo

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

// Collection é o nome da coleção de campanhas no store.
const Collection = "campanhas"

type CampaignRepository struct {
	docs *docrepo.Collection[domain.Campaign]
}

func NewCampaignRepository(store docstore.Store, log logger.Logger) *CampaignRepository {
	return &CampaignRepository{
		docs: docrepo.New(store, Collection, func(c *domain.Campaign, id string) { c.ID = id }, log),
	}
}

func (r *CampaignRepository) CreateCampaign(ctx context.Context, c domain.Campaign) (domain.Campaign, error) {
	now := time.Now().UTC()
	c.ID = ""
	c.CreatedAt = now
	c.UpdatedAt = now
	return r.docs.Create(ctx, c)
}

func (r *CampaignRepository) GetCampaignByID(ctx context.Context, id string) (domain.Campaign, error) {
	c, err := r.docs.Get(ctx, id)
	if errors.IsNotFound(err) {
		return domain.Campaign{}, errors.NewNotFoundError(fmt.Sprintf("Campanha com ID %s não encontrada.", id))
	}
	return c, err
}

// GetAllCampaigns lista as campanhas, as mais recentes primeiro.
func (r *CampaignRepository) GetAllCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return r.docs.Find(ctx, docstore.Query{OrderBy: "dataInicio", Desc: true})
}

func (r *CampaignRepository) UpdateCampaign(ctx context.Context, c domain.Campaign) (domain.Campaign, error) {
	c.UpdatedAt = time.Now().UTC()
	err := r.docs.Set(ctx, c.ID, c)
	if errors.IsNotFound(err) {
		return domain.Campaign{}, errors.NewNotFoundError(fmt.Sprintf("Campanha com ID %s não encontrada.", c.ID))
	}
	if err != nil {
		return domain.Campaign{}, err
	}
	return c, nil
}

func (r *CampaignRepository) DeleteCampaign(ctx context.Context, id string) error {
	err := r.docs.Delete(ctx, id)
	if errors.IsNotFound(err) {
		return errors.NewNotFoundError(fmt.Sprintf("Campanha com ID %s não encontrada.", id))
	}
	return err
}
