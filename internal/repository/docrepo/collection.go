// Package docrepo liga os tipos de domínio ao store de documentos: serialização,
// atribuição do ID e registo de operações, comuns a todos os repositórios.
package docrepo

import (
	"context"

	"lojasocial/internal/errors"
	"lojasocial/internal/pkg/docstore"
	"lojasocial/internal/pkg/logger"
)

// Collection é um repositório tipado sobre uma coleção do store.
type Collection[T any] struct {
	store  docstore.Store
	name   string
	setID  func(*T, string)
	logger logger.Logger
}

// New cria o repositório da coleção name. setID copia o ID do documento para a entidade.
func New[T any](store docstore.Store, name string, setID func(*T, string), log logger.Logger) *Collection[T] {
	return &Collection[T]{store: store, name: name, setID: setID, logger: log}
}

// Name devolve o nome da coleção.
func (c *Collection[T]) Name() string { return c.name }

// Create insere v e devolve-o com o ID atribuído pelo store.
func (c *Collection[T]) Create(ctx context.Context, v T) (T, error) {
	c.logger.Debug("Criando documento.", map[string]interface{}{"collection": c.name})

	id, err := c.store.Create(ctx, c.name, v)
	if err != nil {
		c.logger.Error("Falha ao criar documento.", err)
		var zero T
		return zero, err
	}
	c.setID(&v, id)

	c.logger.Info("Documento criado com sucesso.", map[string]interface{}{"collection": c.name, "id": id})
	return v, nil
}

// Get devolve o documento id. Um documento que não desserializa é um erro de integridade.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	c.logger.Debug("Buscando documento.", map[string]interface{}{"collection": c.name, "id": id})

	var v T
	if id == "" {
		return v, errors.NewValidationError("O ID é obrigatório.")
	}
	doc, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		if !errors.IsNotFound(err) {
			c.logger.Error("Falha ao buscar documento.", err)
		}
		return v, err
	}
	return c.decode(doc)
}

// Find devolve os documentos que satisfazem q. A coleção é sempre a deste repositório.
func (c *Collection[T]) Find(ctx context.Context, q docstore.Query) ([]T, error) {
	q.Collection = c.name
	c.logger.Debug("Consultando documentos.", map[string]interface{}{"collection": c.name, "field": q.Field, "orderBy": q.OrderBy})

	docs, err := c.store.Find(ctx, q)
	if err != nil {
		c.logger.Error("Falha ao consultar documentos.", err)
		return nil, err
	}
	return c.decodeAll(docs)
}

// List devolve todos os documentos por ordem de criação.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	return c.Find(ctx, docstore.Query{OrderBy: docstore.FieldCreatedAt})
}

// Set substitui o documento id por v.
func (c *Collection[T]) Set(ctx context.Context, id string, v T) error {
	if id == "" {
		return errors.NewValidationError("O ID é obrigatório.")
	}
	if err := c.store.Set(ctx, c.name, id, v); err != nil {
		if !errors.IsNotFound(err) {
			c.logger.Error("Falha ao atualizar documento.", err)
		}
		return err
	}
	c.logger.Info("Documento atualizado com sucesso.", map[string]interface{}{"collection": c.name, "id": id})
	return nil
}

// Update altera apenas os campos indicados do documento id.
func (c *Collection[T]) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if id == "" {
		return errors.NewValidationError("O ID é obrigatório.")
	}
	if err := c.store.Update(ctx, c.name, id, fields); err != nil {
		if !errors.IsNotFound(err) {
			c.logger.Error("Falha ao atualizar documento.", err)
		}
		return err
	}
	c.logger.Info("Documento atualizado com sucesso.", map[string]interface{}{"collection": c.name, "id": id})
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewValidationError("O ID é obrigatório.")
	}
	if err := c.store.Delete(ctx, c.name, id); err != nil {
		if !errors.IsNotFound(err) {
			c.logger.Error("Falha ao apagar documento.", err)
		}
		return err
	}
	c.logger.Info("Documento apagado com sucesso.", map[string]interface{}{"collection": c.name, "id": id})
	return nil
}

// Subscribe entrega um snapshot tipado de q em cada alteração da coleção.
// Um snapshot que não desserializa é entregue a onError e os seguintes são ignorados.
func (c *Collection[T]) Subscribe(ctx context.Context, q docstore.Query, onSnapshot func([]T), onError func(error)) (docstore.Subscription, error) {
	q.Collection = c.name
	failed := false
	sub, err := c.store.Subscribe(ctx, q, func(docs []docstore.Document) {
		if failed {
			return
		}
		items, err := c.decodeAll(docs)
		if err != nil {
			failed = true
			if onError != nil {
				onError(err)
			}
			return
		}
		onSnapshot(items)
	}, onError)
	if err != nil {
		c.logger.Error("Falha ao subscrever coleção.", err)
		return nil, err
	}
	return sub, nil
}

func (c *Collection[T]) decode(doc docstore.Document) (T, error) {
	var v T
	if err := doc.Decode(&v); err != nil {
		c.logger.Error("Documento inválido no store.", err)
		return v, errors.NewInternalError("Documento inválido em "+c.name+"/"+doc.ID, err)
	}
	c.setID(&v, doc.ID)
	return v, nil
}

func (c *Collection[T]) decodeAll(docs []docstore.Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := c.decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
