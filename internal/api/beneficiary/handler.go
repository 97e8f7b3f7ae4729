package beneficiary

import (
	"context"
	"net/http"

	"lojasocial/internal/api/respond"
	"lojasocial/internal/domain"
	"lojasocial/internal/pkg/logger"
)

// BeneficiaryService define o contrato que o Handler espera da camada de Serviço.
type BeneficiaryService interface {
	CreateBeneficiary(ctx context.Context, b domain.Beneficiary) (domain.Beneficiary, error)
	GetBeneficiaryByID(ctx context.Context, id string) (domain.Beneficiary, error)
	GetBeneficiaries(ctx context.Context, activeOnly bool) ([]domain.Beneficiary, error)
	UpdateBeneficiary(ctx context.Context, b domain.Beneficiary) (domain.Beneficiary, error)
	DeleteBeneficiary(ctx context.Context, id string) error
}

// Handler agrupa todos os métodos de Handler de beneficiários.
type Handler struct {
	Service BeneficiaryService
	respond.Responder
}

func NewHandler(svc BeneficiaryService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Responder: respond.Responder{Logger: log}}
}

// CreateBeneficiaryHandler lida com a requisição POST /v1/beneficiarios.
// @Summary Regista um beneficiário
// @Tags beneficiarios
// @Accept json
// @Produce json
// @Param beneficiario body domain.Beneficiary true "Dados do beneficiário"
// @Success 201 {object} domain.Beneficiary
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Security ApiKeyAuth
// @Router /beneficiarios [post]
func (h *Handler) CreateBeneficiaryHandler(w http.ResponseWriter, r *http.Request) {
	var b domain.Beneficiary
	if err := respond.Decode(r, &b); err != nil {
		h.JSON(w, r, nil, err, http.StatusCreated)
		return
	}
	created, err := h.Service.CreateBeneficiary(r.Context(), b)
	h.JSON(w, r, created, err, http.StatusCreated)
}

// GetBeneficiaryHandler lida com a requisição GET /v1/beneficiarios/{id}.
// @Summary Obtém um beneficiário por ID
// @Tags beneficiarios
// @Produce json
// @Param id path string true "ID do beneficiário"
// @Success 200 {object} domain.Beneficiary
// @Failure 404 {object} domain.ErrorResponse "Beneficiário não encontrado"
// @Security ApiKeyAuth
// @Router /beneficiarios/{id} [get]
func (h *Handler) GetBeneficiaryHandler(w http.ResponseWriter, r *http.Request) {
	b, err := h.Service.GetBeneficiaryByID(r.Context(), r.PathValue("id"))
	h.JSON(w, r, b, err, http.StatusOK)
}

// ListBeneficiariesHandler lida com a requisição GET /v1/beneficiarios.
// @Summary Lista os beneficiários
// @Tags beneficiarios
// @Produce json
// @Param ativos query bool false "Só beneficiários ativos"
// @Success 200 {array} domain.Beneficiary
// @Security ApiKeyAuth
// @Router /beneficiarios [get]
func (h *Handler) ListBeneficiariesHandler(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("ativos") == "true"
	list, err := h.Service.GetBeneficiaries(r.Context(), activeOnly)
	h.JSON(w, r, list, err, http.StatusOK)
}

// UpdateBeneficiaryHandler lida com a requisição PUT /v1/beneficiarios/{id}.
// @Summary Atualiza um beneficiário
// @Tags beneficiarios
// @Accept json
// @Produce json
// @Param id path string true "ID do beneficiário"
// @Param beneficiario body domain.Beneficiary true "Dados do beneficiário"
// @Success 200 {object} domain.Beneficiary
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Beneficiário não encontrado"
// @Security ApiKeyAuth
// @Router /beneficiarios/{id} [put]
func (h *Handler) UpdateBeneficiaryHandler(w http.ResponseWriter, r *http.Request) {
	var b domain.Beneficiary
	if err := respond.Decode(r, &b); err != nil {
		h.JSON(w, r, nil, err, http.StatusOK)
		return
	}
	b.ID = r.PathValue("id")
	updated, err := h.Service.UpdateBeneficiary(r.Context(), b)
	h.JSON(w, r, updated, err, http.StatusOK)
}

// DeleteBeneficiaryHandler lida com a requisição DELETE /v1/beneficiarios/{id}.
// @Summary Apaga um beneficiário
// @Tags beneficiarios
// @Param id path string true "ID do beneficiário"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Beneficiário não encontrado"
// @Security ApiKeyAuth
// @Router /beneficiarios/{id} [delete]
func (h *Handler) DeleteBeneficiaryHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteBeneficiary(r.Context(), r.PathValue("id"))
	h.JSON(w, r, nil, err, http.StatusNoContent)
}
