package deliveryrepo

import (
	"context"
	"fmt"

	"lojasocial/internal/domain"
	"lojasocial/internal/errors"
	"lojasocial/internal/pkg/docstore"
	"lojasocial/internal/pkg/logger"
	"lojasocial/internal/repository/docrepo"
)

// Collection é o nome da coleção de entregas no store.
const Collection = "entregas"

type DeliveryRepository struct {
	docs *docrepo.Collection[domain.Delivery]
}

func NewDeliveryRepository(store docstore.Store, log logger.Logger) *DeliveryRepository {
	return &DeliveryRepository{
		docs: docrepo.New(store, Collection, func(d *domain.Delivery, id string) { d.ID = id }, log),
	}
}

// Create persiste uma entrega. O ID é atribuído pelo store.
func (r *DeliveryRepository) Create(ctx context.Context, d domain.Delivery) (domain.Delivery, error) {
	d.ID = ""
	return r.docs.Create(ctx, d)
}

func (r *DeliveryRepository) FindByID(ctx context.Context, id string) (domain.Delivery, error) {
	d, err := r.docs.Get(ctx, id)
	if errors.IsNotFound(err) {
		return domain.Delivery{}, errors.NewNotFoundError(fmt.Sprintf("Entrega com ID %s não encontrada.", id))
	}
	return d, err
}

// List devolve as entregas, mais recentes primeiro; status vazio não filtra.
func (r *DeliveryRepository) List(ctx context.Context, status domain.DeliveryStatus) ([]domain.Delivery, error) {
	q := docstore.Query{OrderBy: docstore.FieldCreatedAt, Desc: true}
	if status != "" {
		q.Field = "estado"
		q.Value = status
	}
	return r.docs.Find(ctx, q)
}

// Update substitui a entrega guardada.
func (r *DeliveryRepository) Update(ctx context.Context, d domain.Delivery) error {
	err := r.docs.Set(ctx, d.ID, d)
	if errors.IsNotFound(err) {
		return errors.NewNotFoundError(fmt.Sprintf("Entrega com ID %s não encontrada.", d.ID))
	}
	return err
}

// Delete apaga a entrega. Só é usado para anular uma gravação que não chegou a descontar stock.
func (r *DeliveryRepository) Delete(ctx context.Context, id string) error {
	err := r.docs.Delete(ctx, id)
	if errors.IsNotFound(err) {
		return errors.NewNotFoundError(fmt.Sprintf("Entrega com ID %s não encontrada.", id))
	}
	return err
}
