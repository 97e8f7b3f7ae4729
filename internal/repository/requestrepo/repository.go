package requestrepo

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

// Collection é o nome da coleção de pedidos no store.
const Collection = "pedidos"

// RequestRepository guarda os pedidos dos beneficiários.
type RequestRepository struct {
	docs   *docrepo.Collection[domain.Request]
	logger logger.Logger
}

func NewRequestRepository(store docstore.Store, log logger.Logger) *RequestRepository {
	return &RequestRepository{
		docs:   docrepo.New(store, Collection, func(r *domain.Request, id string) { r.ID = id }, log),
		logger: log,
	}
}

// Create insere um pedido novo.
func (r *RequestRepository) Create(ctx context.Context, req domain.Request) (domain.Request, error) {
	now := time.Now().UTC()
	req.ID = ""
	req.CreatedAt = now
	req.UpdatedAt = now
	return r.docs.Create(ctx, req)
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (domain.Request, error) {
	req, err := r.docs.Get(ctx, id)
	if errors.IsNotFound(err) {
		return domain.Request{}, errors.NewNotFoundError(fmt.Sprintf("Pedido com ID %s não encontrado.", id))
	}
	return req, err
}

// statusQuery filtra por um único estado e ordena pela criação, mais recentes primeiro.
func statusQuery(status domain.RequestStatus) docstore.Query {
	return docstore.Query{Field: "estado", Value: status, OrderBy: docstore.FieldCreatedAt, Desc: true}
}

// newestFirst ordena a coleção inteira pela criação, mais recentes primeiro.
var newestFirst = docstore.Query{OrderBy: docstore.FieldCreatedAt, Desc: true}

// ListByStatus devolve a fila de pedidos de um estado, mais recentes primeiro.
// Estados com valores antigos (PRONTO, ENTREGUE) são filtrados depois da leitura,
// já normalizados, porque o store só compara o valor guardado.
func (r *RequestRepository) ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.Request, error) {
	if !status.HasLegacyValues() {
		return r.docs.Find(ctx, statusQuery(status))
	}
	all, err := r.docs.Find(ctx, newestFirst)
	if err != nil {
		return nil, err
	}
	return withStatus(all, status), nil
}

func withStatus(reqs []domain.Request, status domain.RequestStatus) []domain.Request {
	out := make([]domain.Request, 0, len(reqs))
	for _, req := range reqs {
		if req.Status == status {
			out = append(out, req)
		}
	}
	return out
}

// ListAll devolve todos os pedidos, mais recentes primeiro.
func (r *RequestRepository) ListAll(ctx context.Context) ([]domain.Request, error) {
	return r.docs.Find(ctx, newestFirst)
}

// UpdateStatus grava o estado e o motivo de recusa de um pedido já validado pelo domínio.
func (r *RequestRepository) UpdateStatus(ctx context.Context, req domain.Request) error {
	r.logger.Debug("Atualizando estado do pedido.", map[string]interface{}{"id": req.ID, "estado": req.Status})

	fields := map[string]interface{}{
		"estado":       req.Status,
		"atualizadoEm": time.Now().UTC(),
	}
	if req.RefusalReason != "" {
		fields["motivoRecusa"] = req.RefusalReason
	}
	err := r.docs.Update(ctx, req.ID, fields)
	if errors.IsNotFound(err) {
		return errors.NewNotFoundError(fmt.Sprintf("Pedido com ID %s não encontrado.", req.ID))
	}
	return err
}

// SubscribeByStatus entrega a fila de um estado sempre que a coleção muda.
func (r *RequestRepository) SubscribeByStatus(ctx context.Context, status domain.RequestStatus, onSnapshot func([]domain.Request), onError func(error)) (docstore.Subscription, error) {
	if !status.HasLegacyValues() {
		return r.docs.Subscribe(ctx, statusQuery(status), onSnapshot, onError)
	}
	return r.docs.Subscribe(ctx, newestFirst, func(all []domain.Request) {
		onSnapshot(withStatus(all, status))
	}, onError)
}
