package product

import (
	"context"
	"net/http"

	"lojasocial/internal/api/respond"
	"lojasocial/internal/domain"
	"lojasocial/internal/pkg/logger"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	respond.Responder
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Responder: respond.Responder{Logger: log}}
}

// CreateProductHandler lida com a requisição POST /v1/produtos.
// @Summary Cria um produto
// @Description Cria a ficha do produto sem stock. A quantidadeTotal enviada é ignorada.
// @Tags produtos
// @Accept json
// @Produce json
// @Param produto body domain.Product true "Dados do produto"
// @Success 201 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Security ApiKeyAuth
// @Router /produtos [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := respond.Decode(r, &p); err != nil {
		h.JSON(w, r, nil, err, http.StatusCreated)
		return
	}

	if session, err := respond.Session(r); err == nil {
		h.Logger.Info("Criação de produto por", map[string]interface{}{"user_id": session.UserID, "role": session.Role})
	}

	created, err := h.Service.CreateProduct(r.Context(), p)
	h.JSON(w, r, created, err, http.StatusCreated)
}

// GetProductByIDHandler lida com a requisição GET /v1/produtos/{id}.
// @Summary Obtém um produto por ID
// @Description A quantidadeTotal é recalculada a partir dos lotes válidos hoje.
// @Tags produtos
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security ApiKeyAuth
// @Router /produtos/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetProductByID(r.Context(), r.PathValue("id"))
	h.JSON(w, r, p, err, http.StatusOK)
}

// ListProductsHandler lida com a requisição GET /v1/produtos.
// @Summary Lista os produtos
// @Tags produtos
// @Produce json
// @Param nome query string false "Filtro por nome (contém)"
// @Param emStock query bool false "Só produtos com stock válido"
// @Success 200 {array} domain.Product
// @Security ApiKeyAuth
// @Router /produtos [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ProductFilter{Name: q.Get("nome"), InStockOnly: q.Get("emStock") == "true"}
	list, err := h.Service.GetProducts(r.Context(), filter)
	h.JSON(w, r, list, err, http.StatusOK)
}

// UpdateProductHandler lida com a requisição PUT /v1/produtos/{id}.
// @Summary Atualiza nome e descrição de um produto
// @Tags produtos
// @Accept json
// @Produce json
// @Param id path string true "ID do produto"
// @Param produto body domain.Product true "Dados do produto"
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security ApiKeyAuth
// @Router /produtos/{id} [put]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := respond.Decode(r, &p); err != nil {
		h.JSON(w, r, nil, err, http.StatusOK)
		return
	}
	p.ID = r.PathValue("id")
	updated, err := h.Service.UpdateProduct(r.Context(), p)
	h.JSON(w, r, updated, err, http.StatusOK)
}

// DeleteProductHandler lida com a requisição DELETE /v1/produtos/{id}.
// @Summary Apaga um produto sem stock válido
// @Tags produtos
// @Param id path string true "ID do produto"
// @Success 204 "Nenhum conteúdo"
// @Failure 400 {object} domain.ErrorResponse "O produto ainda tem stock válido"
// @Security ApiKeyAuth
// @Router /produtos/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteProduct(r.Context(), r.PathValue("id"))
	h.JSON(w, r, nil, err, http.StatusNoContent)
}
