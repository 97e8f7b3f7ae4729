package request

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"lojasocial/internal/api/respond"
	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
	"lojasocial/internal/pkg/docstore"
	"lojasocial/internal/pkg/logger"
)

// RequestService define o contrato que o Handler espera da camada de Serviço.
type RequestService interface {
	CreateRequest(ctx context.Context, req domain.Request) (domain.Request, error)
	GetRequest(ctx context.Context, id string) (domain.Request, error)
	ListRequests(ctx context.Context, status string) ([]domain.Request, error)
	Accept(ctx context.Context, session domain.Session, id string) (domain.Request, error)
	Refuse(ctx context.Context, session domain.Session, id, reason string) (domain.Request, error)
	Subscribe(ctx context.Context, status string, onSnapshot func([]domain.Request), onError func(error)) (docstore.Subscription, error)
}

// RefuseRequest é o payload da recusa de um pedido.
type RefuseRequest struct {
	Reason string `json:"motivo"`
}

type Handler struct {
	Service RequestService
	respond.Responder
}

func NewHandler(svc RequestService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Responder: respond.Responder{Logger: log}}
}

// CreateRequestHandler lida com a requisição POST /v1/pedidos.
// @Summary Regista um pedido de um beneficiário
// @Description O estado inicial é sempre NOVO.
// @Tags pedidos
// @Accept json
// @Produce json
// @Param pedido body domain.Request true "Pedido"
// @Success 201 {object} domain.Request
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Beneficiário não encontrado"
// @Security ApiKeyAuth
// @Router /pedidos [post]
func (h *Handler) CreateRequestHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.Request
	if err := respond.Decode(r, &req); err != nil {
		h.JSON(w, r, nil, err, http.StatusCreated)
		return
	}
	created, err := h.Service.CreateRequest(r.Context(), req)
	h.JSON(w, r, created, err, http.StatusCreated)
}

// @Summary Obtém um pedido por ID
// @Tags pedidos
// @Produce json
// @Param id path string true "ID do pedido"
// @Success 200 {object} domain.Request
// @Failure 404 {object} domain.ErrorResponse "Pedido não encontrado"
// @Security ApiKeyAuth
// @Router /pedidos/{id} [get]
func (h *Handler) GetRequestHandler(w http.ResponseWriter, r *http.Request) {
	req, err := h.Service.GetRequest(r.Context(), r.PathValue("id"))
	h.JSON(w, r, req, err, http.StatusOK)
}

// ListRequestsHandler lida com a requisição GET /v1/pedidos?estado=.
// @Summary Lista os pedidos, mais recentes primeiro
// @Tags pedidos
// @Produce json
// @Param estado query string false "NOVO, EM_ANDAMENTO, TERMINADO ou RECUSADO"
// @Success 200 {array} domain.Request
// @Failure 400 {object} domain.ErrorResponse "Estado desconhecido"
// @Security ApiKeyAuth
// @Router /pedidos [get]
func (h *Handler) ListRequestsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListRequests(r.Context(), r.URL.Query().Get("estado"))
	h.JSON(w, r, list, err, http.StatusOK)
}

// AcceptRequestHandler lida com a requisição POST /v1/pedidos/{id}/aceitar.
// @Summary Aceita um pedido NOVO
// @Tags pedidos
// @Produce json
// @Param id path string true "ID do pedido"
// @Success 200 {object} domain.Request
// @Failure 409 {object} domain.ErrorResponse "Transição inválida"
// @Security ApiKeyAuth
// @Router /pedidos/{id}/aceitar [post]
func (h *Handler) AcceptRequestHandler(w http.ResponseWriter, r *http.Request) {
	session, err := respond.Session(r)
	if err != nil {
		h.JSON(w, r, nil, err, http.StatusOK)
		return
	}
	req, err := h.Service.Accept(r.Context(), session, r.PathValue("id"))
	h.JSON(w, r, req, err, http.StatusOK)
}

// RefuseRequestHandler lida com a requisição POST /v1/pedidos/{id}/recusar.
// @Summary Recusa um pedido NOVO com motivo
// @Tags pedidos
// @Accept json
// @Produce json
// @Param id path string true "ID do pedido"
// @Param recusa body RefuseRequest true "Motivo da recusa"
// @Success 200 {object} domain.Request
// @Failure 400 {object} domain.ErrorResponse "Motivo em falta"
// @Failure 409 {object} domain.ErrorResponse "Transição inválida"
// @Security ApiKeyAuth
// @Router /pedidos/{id}/recusar [post]
func (h *Handler) RefuseRequestHandler(w http.ResponseWriter, r *http.Request) {
	session, err := respond.Session(r)
	if err != nil {
		h.JSON(w, r, nil, err, http.StatusOK)
		return
	}
	var body RefuseRequest
	if err := respond.Decode(r, &body); err != nil {
		h.JSON(w, r, nil, err, http.StatusOK)
		return
	}
	req, err := h.Service.Refuse(r.Context(), session, r.PathValue("id"), body.Reason)
	h.JSON(w, r, req, err, http.StatusOK)
}

// StreamRequestsHandler lida com a requisição GET /v1/pedidos/stream?estado=.
// Envia a fila completa como evento SSE no início e a cada alteração. Fechar a ligação
// cancela a subscrição; um erro do store é enviado como evento "erro" e termina o stream.
// @Summary Fila de pedidos em tempo real (Server-Sent Events)
// @Tags pedidos
// @Produce text/event-stream
// @Param estado query string true "Estado dos pedidos"
// @Success 200 {array} domain.Request
// @Security ApiKeyAuth
// @Router /pedidos/stream [get]
func (h *Handler) StreamRequestsHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.JSON(w, r, nil, apperror.NewInternalError("Streaming não suportado.", nil), http.StatusOK)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	snapshots := make(chan []domain.Request, 1)
	failures := make(chan error, 1)

	sub, err := h.Service.Subscribe(ctx, r.URL.Query().Get("estado"),
		func(reqs []domain.Request) {
			// Só interessa o snapshot mais recente; um cliente lento perde os intermédios.
			select {
			case <-snapshots:
			default:
			}
			snapshots <- reqs
		},
		func(err error) {
			select {
			case failures <- err:
			default:
			}
		})
	if err != nil {
		h.JSON(w, r, nil, err, http.StatusOK)
		return
	}
	defer sub.Cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case reqs := <-snapshots:
			data, err := json.Marshal(reqs)
			if err != nil {
				h.Logger.Error("Falha ao codificar snapshot de pedidos", err)
				return
			}
			if _, err := fmt.Fprintf(w, "event: pedidos\ndata: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		case err := <-failures:
			h.Logger.Warn("Subscrição de pedidos terminada com erro.", map[string]interface{}{"error": err.Error()})
			_, _, message := apperror.MapToHTTPStatus(err)
			data, _ := json.Marshal(map[string]string{"message": message})
			fmt.Fprintf(w, "event: erro\ndata: %s\n\n", data)
			flusher.Flush()
			return
		}
	}
}
