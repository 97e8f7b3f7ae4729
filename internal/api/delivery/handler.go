package delivery

import (
	"context"
	"net/http"

	"lojasocial/internal/api/respond"
	"lojasocial/internal/domain"
	"lojasocial/internal/pkg/logger"
	"lojasocial/internal/service/deliveryservice"
)

// DeliveryService define o contrato que o Handler espera da camada de Serviço.
type DeliveryService interface {
	NewDraft(ctx context.Context, session domain.Session, in deliveryservice.NewDraftInput) (deliveryservice.DraftView, error)
	GetDraft(ctx context.Context, session domain.Session, id string) (deliveryservice.DraftView, error)
	SetBeneficiary(ctx context.Context, session domain.Session, id, beneficiaryID string) (deliveryservice.DraftView, error)
	AddItem(ctx context.Context, session domain.Session, id, productID string) (deliveryservice.DraftView, error)
	IncreaseQuantity(ctx context.Context, session domain.Session, id, productID string) (deliveryservice.DraftView, error)
	DecreaseQuantity(ctx context.Context, session domain.Session, id, productID string) (deliveryservice.DraftView, error)
	RemoveItem(ctx context.Context, session domain.Session, id, productID string) (deliveryservice.DraftView, error)
	DiscardDraft(ctx context.Context, session domain.Session, id string) error
	SaveDraft(ctx context.Context, session domain.Session, id string) (domain.Delivery, error)
	GetDelivery(ctx context.Context, id string) (domain.Delivery, error)
	ListDeliveries(ctx context.Context, status string) ([]domain.Delivery, error)
	FinishDelivery(ctx context.Context, session domain.Session, id string) (domain.Delivery, error)
}

// BeneficiaryRequest escolhe o beneficiário de um rascunho manual.
type BeneficiaryRequest struct {
	BeneficiaryID string `json:"beneficiarioId"`
}

// ItemRequest junta um produto ao rascunho.
type ItemRequest struct {
	ProductID string `json:"produtoId"`
}

// Handler agrupa os handlers de rascunhos e entregas.
type Handler struct {
	Service DeliveryService
	respond.Responder
}

func NewHandler(svc DeliveryService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Responder: respond.Responder{Logger: log}}
}

// withSession resolve a sessão antes de chamar fn. Os rascunhos pertencem a quem os criou.
func (h *Handler) withSession(fn func(w http.ResponseWriter, r *http.Request, session domain.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := respond.Session(r)
		if err != nil {
			h.JSON(w, r, nil, err, http.StatusOK)
			return
		}
		fn(w, r, session)
	}
}

// NewDraftHandler lida com a requisição POST /v1/rascunhos.
// @Summary Abre um rascunho de entrega
// @Description Com pedidoId, o pedido tem de estar EM_ANDAMENTO e o beneficiário fica bloqueado.
// @Tags entregas
// @Accept json
// @Produce json
// @Param origem body deliveryservice.NewDraftInput false "Pedido de origem ou beneficiário"
// @Success 201 {object} deliveryservice.DraftView
// @Failure 409 {object} domain.ErrorResponse "Pedido não está em andamento"
// @Security ApiKeyAuth
// @Router /rascunhos [post]
func (h *Handler) NewDraftHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, session domain.Session) {
		var in deliveryservice.NewDraftInput
		if r.ContentLength != 0 {
			if err := respond.Decode(r, &in); err != nil {
				h.JSON(w, r, nil, err, http.StatusCreated)
				return
			}
		}
		view, err := h.Service.NewDraft(r.Context(), session, in)
		h.JSON(w, r, view, err, http.StatusCreated)
	})
}

// @Summary Obtém um rascunho com os produtos disponíveis
// @Tags entregas
// @Produce json
// @Param id path string true "ID do rascunho"
// @Success 200 {object} deliveryservice.DraftView
// @Failure 404 {object} domain.ErrorResponse "Rascunho inexistente ou expirado"
// @Security ApiKeyAuth
// @Router /rascunhos/{id} [get]
func (h *Handler) GetDraftHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, session domain.Session) {
		view, err := h.Service.GetDraft(r.Context(), session, r.PathValue("id"))
		h.JSON(w, r, view, err, http.StatusOK)
	})
}

// @Summary Lista os produtos que ainda podem entrar no rascunho
// @Tags entregas
// @Produce json
// @Param id path string true "ID do rascunho"
// @Success 200 {array} deliveryservice.Candidate
// @Security ApiKeyAuth
// @Router /rascunhos/{id}/candidatos [get]
func (h *Handler) CandidatesHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, session domain.Session) {
		view, err := h.Service.GetDraft(r.Context(), session, r.PathValue("id"))
		h.JSON(w, r, view.Candidates, err, http.StatusOK)
	})
}

// @Summary Escolhe o beneficiário de um rascunho manual
// @Tags entregas
// @Accept json
// @Produce json
// @Param id path string true "ID do rascunho"
// @Param beneficiario body BeneficiaryRequest true "Beneficiário"
// @Success 200 {object} deliveryservice.DraftView
// @Failure 409 {object} domain.ErrorResponse "Beneficiário bloqueado pelo pedido"
// @Security ApiKeyAuth
// @Router /rascunhos/{id}/beneficiario [put]
func (h *Handler) SetBeneficiaryHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, session domain.Session) {
		var body BeneficiaryRequest
		if err := respond.Decode(r, &body); err != nil {
			h.JSON(w, r, nil, err, http.StatusOK)
			return
		}
		view, err := h.Service.SetBeneficiary(r.Context(), session, r.PathValue("id"), body.BeneficiaryID)
		h.JSON(w, r, view, err, http.StatusOK)
	})
}

// AddItemHandler lida com a requisição POST /v1/rascunhos/{id}/itens.
// @Summary Junta uma unidade de um produto ao rascunho
// @Tags entregas
// @Accept json
// @Produce json
// @Param id path string true "ID do rascunho"
// @Param item body ItemRequest true "Produto"
// @Success 200 {object} deliveryservice.DraftView
// @Failure 422 {object} domain.ErrorResponse "INSUFFICIENT_STOCK ou LIMIT_REACHED"
// @Security ApiKeyAuth
// @Router /rascunhos/{id}/itens [post]
func (h *Handler) AddItemHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, session domain.Session) {
		var body ItemRequest
		if err := respond.Decode(r, &body); err != nil {
			h.JSON(w, r, nil, err, http.StatusOK)
			return
		}
		view, err := h.Service.AddItem(r.Context(), session, r.PathValue("id"), body.ProductID)
		h.JSON(w, r, view, err, http.StatusOK)
	})
}

// @Summary Junta uma unidade a uma linha existente
// @Tags entregas
// @Produce json
// @Param id path string true "ID do rascunho"
// @Param produtoId path string true "ID do produto"
// @Success 200 {object} deliveryservice.DraftView
// @Failure 422 {object} domain.ErrorResponse "LIMIT_REACHED"
// @Security ApiKeyAuth
// @Router /rascunhos/{id}/itens/{produtoId}/incrementar [post]
func (h *Handler) IncreaseHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, session domain.Session) {
		view, err := h.Service.IncreaseQuantity(r.Context(), session, r.PathValue("id"), r.PathValue("produtoId"))
		h.JSON(w, r, view, err, http.StatusOK)
	})
}

// @Summary Retira uma unidade de uma linha (mínimo 1)
// @Tags entregas
// @Produce json
// @Param id path string true "ID do rascunho"
// @Param produtoId path string true "ID do produto"
// @Success 200 {object} deliveryservice.DraftView
// @Security ApiKeyAuth
// @Router /rascunhos/{id}/itens/{produtoId}/decrementar [post]
func (h *Handler) DecreaseHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, session domain.Session) {
		view, err := h.Service.DecreaseQuantity(r.Context(), session, r.PathValue("id"), r.PathValue("produtoId"))
		h.JSON(w, r, view, err, http.StatusOK)
	})
}

// @Summary Remove uma linha do rascunho
// @Tags entregas
// @Produce json
// @Param id path string true "ID do rascunho"
// @Param produtoId path string true "ID do produto"
// @Success 200 {object} deliveryservice.DraftView
// @Security ApiKeyAuth
// @Router /rascunhos/{id}/itens/{produtoId} [delete]
func (h *Handler) RemoveItemHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, session domain.Session) {
		view, err := h.Service.RemoveItem(r.Context(), session, r.PathValue("id"), r.PathValue("produtoId"))
		h.JSON(w, r, view, err, http.StatusOK)
	})
}

// SaveDraftHandler lida com a requisição POST /v1/rascunhos/{id}/guardar.
// @Summary Grava a entrega e desconta o stock
// @Tags entregas
// @Produce json
// @Param id path string true "ID do rascunho"
// @Success 201 {object} domain.Delivery
// @Failure 400 {object} domain.ErrorResponse "Beneficiário em falta ou entrega vazia"
// @Failure 422 {object} domain.ErrorResponse "Stock alterado entretanto"
// @Security ApiKeyAuth
// @Router /rascunhos/{id}/guardar [post]
func (h *Handler) SaveDraftHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, session domain.Session) {
		d, err := h.Service.SaveDraft(r.Context(), session, r.PathValue("id"))
		h.JSON(w, r, d, err, http.StatusCreated)
	})
}

// @Summary Abandona um rascunho
// @Tags entregas
// @Param id path string true "ID do rascunho"
// @Success 204 "Nenhum conteúdo"
// @Security ApiKeyAuth
// @Router /rascunhos/{id} [delete]
func (h *Handler) DiscardDraftHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, session domain.Session) {
		err := h.Service.DiscardDraft(r.Context(), session, r.PathValue("id"))
		h.JSON(w, r, nil, err, http.StatusNoContent)
	})
}

// @Summary Lista as entregas, mais recentes primeiro
// @Tags entregas
// @Produce json
// @Param estado query string false "EM_ANDAMENTO ou TERMINADO"
// @Success 200 {array} domain.Delivery
// @Security ApiKeyAuth
// @Router /entregas [get]
func (h *Handler) ListDeliveriesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListDeliveries(r.Context(), r.URL.Query().Get("estado"))
	h.JSON(w, r, list, err, http.StatusOK)
}

// @Summary Obtém uma entrega por ID
// @Tags entregas
// @Produce json
// @Param id path string true "ID da entrega"
// @Success 200 {object} domain.Delivery
// @Failure 404 {object} domain.ErrorResponse "Entrega não encontrada"
// @Security ApiKeyAuth
// @Router /entregas/{id} [get]
func (h *Handler) GetDeliveryHandler(w http.ResponseWriter, r *http.Request) {
	d, err := h.Service.GetDelivery(r.Context(), r.PathValue("id"))
	h.JSON(w, r, d, err, http.StatusOK)
}

// FinishDeliveryHandler lida com a requisição POST /v1/entregas/{id}/terminar.
// @Summary Termina uma entrega
// @Description Se a entrega veio de um pedido, o pedido passa a TERMINADO.
// @Tags entregas
// @Produce json
// @Param id path string true "ID da entrega"
// @Success 200 {object} domain.Delivery
// @Failure 409 {object} domain.ErrorResponse "A entrega já terminou"
// @Security ApiKeyAuth
// @Router /entregas/{id}/terminar [post]
func (h *Handler) FinishDeliveryHandler() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, session domain.Session) {
		d, err := h.Service.FinishDelivery(r.Context(), session, r.PathValue("id"))
		h.JSON(w, r, d, err, http.StatusOK)
	})
}
