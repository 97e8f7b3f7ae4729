package campaign

import (
	"context"
	"net/http"

	"lojasocial/internal/api/respond"
	"lojasocial/internal/domain"
	"lojasocial/internal/pkg/logger"
)

// CampaignService define o contrato que o Handler espera da camada de Serviço.
type CampaignService interface {
	CreateCampaign(ctx context.Context, c domain.Campaign) (domain.Campaign, error)
	GetCampaignByID(ctx context.Context, id string) (domain.Campaign, error)
	GetCampaigns(ctx context.Context) ([]domain.Campaign, error)
	UpdateCampaign(ctx context.Context, c domain.Campaign) (domain.Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error
}

type Handler struct {
	Service CampaignService
	respond.Responder
}

func NewHandler(svc CampaignService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Responder: respond.Responder{Logger: log}}
}

// CreateCampaignHandler lida com a requisição POST /v1/campanhas.
// @Summary Cria uma campanha de recolha
// @Tags campanhas
// @Accept json
// @Produce json
// @Param campanha body domain.Campaign true "Dados da campanha"
// @Success 201 {object} domain.Campaign
// @Failure 400 {object} domain.ErrorResponse "Datas inválidas"
// @Security ApiKeyAuth
// @Router /campanhas [post]
func (h *Handler) CreateCampaignHandler(w http.ResponseWriter, r *http.Request) {
	var c domain.Campaign
	if err := respond.Decode(r, &c); err != nil {
		h.JSON(w, r, nil, err, http.StatusCreated)
		return
	}
	created, err := h.Service.CreateCampaign(r.Context(), c)
	h.JSON(w, r, created, err, http.StatusCreated)
}

// @Summary Obtém uma campanha por ID
// @Tags campanhas
// @Produce json
// @Param id path string true "ID da campanha"
// @Success 200 {object} domain.Campaign
// @Failure 404 {object} domain.ErrorResponse "Campanha não encontrada"
// @Security ApiKeyAuth
// @Router /campanhas/{id} [get]
func (h *Handler) GetCampaignHandler(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetCampaignByID(r.Context(), r.PathValue("id"))
	h.JSON(w, r, c, err, http.StatusOK)
}

// @Summary Lista as campanhas, mais recentes primeiro
// @Tags campanhas
// @Produce json
// @Success 200 {array} domain.Campaign
// @Security ApiKeyAuth
// @Router /campanhas [get]
func (h *Handler) ListCampaignsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.GetCampaigns(r.Context())
	h.JSON(w, r, list, err, http.StatusOK)
}

// @Summary Atualiza uma campanha
// @Tags campanhas
// @Accept json
// @Produce json
// @Param id path string true "ID da campanha"
// @Param campanha body domain.Campaign true "Dados da campanha"
// @Success 200 {object} domain.Campaign
// @Failure 400 {object} domain.ErrorResponse "Datas inválidas"
// @Failure 404 {object} domain.ErrorResponse "Campanha não encontrada"
// @Security ApiKeyAuth
// @Router /campanhas/{id} [put]
func (h *Handler) UpdateCampaignHandler(w http.ResponseWriter, r *http.Request) {
	var c domain.Campaign
	if err := respond.Decode(r, &c); err != nil {
		h.JSON(w, r, nil, err, http.StatusOK)
		return
	}
	c.ID = r.PathValue("id")
	updated, err := h.Service.UpdateCampaign(r.Context(), c)
	h.JSON(w, r, updated, err, http.StatusOK)
}

// @Summary Apaga uma campanha
// @Tags campanhas
// @Param id path string true "ID da campanha"
// @Success 204 "Nenhum conteúdo"
// @Security ApiKeyAuth
// @Router /campanhas/{id} [delete]
func (h *Handler) DeleteCampaignHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteCampaign(r.Context(), r.PathValue("id"))
	h.JSON(w, r, nil, err, http.StatusNoContent)
}
