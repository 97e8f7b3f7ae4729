package stock

import (
	"context"
	"net/http"

	"lojasocial/internal/api/respond"
	"lojasocial/internal/domain"
	"lojasocial/internal/pkg/logger"
)

// StockService define o contrato que o Handler espera da camada de Serviço.
type StockService interface {
	AddLot(ctx context.Context, productID string, lot domain.StockLot) (domain.StockLot, error)
	ListLots(ctx context.Context, productID string) ([]domain.StockLot, error)
	DeleteLot(ctx context.Context, lotID string) error
	ClearExpired(ctx context.Context, productID string) (int, error)
}

// ClearExpiredResponse indica quantos lotes expirados foram apagados.
type ClearExpiredResponse struct {
	Removed int `json:"removidos"`
}

// Handler agrupa todos os métodos de Handler de lotes.
type Handler struct {
	Service StockService
	respond.Responder
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc StockService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Responder: respond.Responder{Logger: log}}
}

// AddLotHandler lida com a requisição POST /v1/produtos/{id}/lotes.
// @Summary Regista um lote de um produto
// @Description A validade é opcional (AAAA-MM-DD). A data de entrada por omissão é hoje.
// @Tags lotes
// @Accept json
// @Produce json
// @Param id path string true "ID do produto"
// @Param lote body domain.StockLot true "Dados do lote"
// @Success 201 {object} domain.StockLot
// @Failure 400 {object} domain.ErrorResponse "Quantidade ou datas inválidas"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security ApiKeyAuth
// @Router /produtos/{id}/lotes [post]
func (h *Handler) AddLotHandler(w http.ResponseWriter, r *http.Request) {
	var lot domain.StockLot
	if err := respond.Decode(r, &lot); err != nil {
		h.JSON(w, r, nil, err, http.StatusCreated)
		return
	}
	created, err := h.Service.AddLot(r.Context(), r.PathValue("id"), lot)
	h.JSON(w, r, created, err, http.StatusCreated)
}

// ListLotsHandler lida com a requisição GET /v1/produtos/{id}/lotes.
// @Summary Lista os lotes de um produto pela ordem de consumo
// @Tags lotes
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {array} domain.StockLot
// @Security ApiKeyAuth
// @Router /produtos/{id}/lotes [get]
func (h *Handler) ListLotsHandler(w http.ResponseWriter, r *http.Request) {
	lots, err := h.Service.ListLots(r.Context(), r.PathValue("id"))
	h.JSON(w, r, lots, err, http.StatusOK)
}

// DeleteLotHandler lida com a requisição DELETE /v1/lotes/{id}.
// @Summary Apaga um lote
// @Tags lotes
// @Param id path string true "ID do lote"
// @Success 204 "Nenhum conteúdo"
// @Security ApiKeyAuth
// @Router /lotes/{id} [delete]
func (h *Handler) DeleteLotHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteLot(r.Context(), r.PathValue("id"))
	h.JSON(w, r, nil, err, http.StatusNoContent)
}

// ClearExpiredHandler lida com a requisição POST /v1/produtos/{id}/limpar-expirados.
// @Summary Apaga os lotes expirados de um produto
// @Tags lotes
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} ClearExpiredResponse
// @Security ApiKeyAuth
// @Router /produtos/{id}/limpar-expirados [post]
func (h *Handler) ClearExpiredHandler(w http.ResponseWriter, r *http.Request) {
	n, err := h.Service.ClearExpired(r.Context(), r.PathValue("id"))
	h.JSON(w, r, ClearExpiredResponse{Removed: n}, err, http.StatusOK)
}
