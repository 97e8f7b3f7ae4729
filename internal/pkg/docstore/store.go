// Package docstore define o contrato do store de documentos usado pela Loja Social
// e os drivers que o implementam (postgres, mongo, memória).
//
// Cada coleção guarda documentos JSON identificados por um ID atribuído pelo store.
// As subscrições entregam um snapshot completo da consulta na subscrição e em cada
// alteração da coleção; um erro termina a subscrição.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// FieldCreatedAt ordena pela data de criação do documento, mantida pelo próprio store.
const FieldCreatedAt = "_createdAt"

// Document é um documento tal como está guardado.
type Document struct {
	ID        string
	Data      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Decode desserializa os dados do documento em v.
func (d Document) Decode(v interface{}) error {
	return json.Unmarshal(d.Data, v)
}

// Query descreve uma leitura de coleção: filtro opcional de igualdade num campo e
// ordenação opcional por um campo.
type Query struct {
	Collection string
	Field      string
	Value      interface{}
	OrderBy    string
	Desc       bool
	Limit      int
}

// Subscription é o handle de uma subscrição em tempo real.
// Depois de Cancel retornar, nenhum callback volta a ser chamado.
// Cancel não deve ser chamado de dentro de um callback da própria subscrição.
type Subscription interface {
	Cancel()
}

// Store é o contrato do store de documentos.
// Get, Set, Update e Delete devolvem NotFoundError quando o documento não existe;
// falhas do driver chegam como InternalError.
type Store interface {
	Create(ctx context.Context, collection string, v interface{}) (string, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Set(ctx context.Context, collection, id string, v interface{}) error
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, collection, id string) error
	Find(ctx context.Context, q Query) ([]Document, error)
	Subscribe(ctx context.Context, q Query, onSnapshot func([]Document), onError func(error)) (Subscription, error)
	Ping(ctx context.Context) error
	Close() error
}

// toObject serializa v e garante que o resultado é um objeto JSON.
func toObject(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("documento não serializável: %w", err)
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("documento tem de ser um objeto JSON: %w", err)
	}
	if obj == nil {
		obj = map[string]interface{}{}
	}
	return obj, nil
}

// normalizeValue converte v para a sua forma JSON genérica (string, float64, bool, ...),
// para que tipos nomeados (e.g. estados) se comparem pelo valor guardado.
func normalizeValue(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// subscription implementa Subscription para todos os drivers. Os callbacks correm com
// mu adquirido, de modo que Cancel espera pelo callback em curso e nenhum outro corre depois.
type subscription struct {
	mu     sync.Mutex
	closed bool
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel liberta a subscrição. Chamadas repetidas não têm efeito.
func (s *subscription) Cancel() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

func (s *subscription) deliver(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	fn()
	return true
}

func (s *subscription) fail(onError func(error), err error) {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		if onError != nil {
			onError(err)
		}
	}
	s.mu.Unlock()
	s.cancel()
}

// ErrSubscriptionClosed é entregue a onError quando o canal de alterações fecha sem cancelamento.
var ErrSubscriptionClosed = fmt.Errorf("docstore: canal de alterações fechado")

// runSubscription arranca o ciclo de uma subscrição: snapshot inicial e um snapshot por
// cada sinal em events. stop liberta os recursos do driver quando o ciclo termina.
func runSubscription(
	parent context.Context,
	find func(context.Context) ([]Document, error),
	events <-chan struct{},
	errs <-chan error,
	stop func(),
	onSnapshot func([]Document),
	onError func(error),
) *subscription {
	ctx, cancel := context.WithCancel(parent)
	s := &subscription{cancel: cancel, done: make(chan struct{})}

	snapshot := func() bool {
		docs, err := find(ctx)
		if err != nil {
			if ctx.Err() == nil {
				s.fail(onError, err)
			}
			return false
		}
		return s.deliver(func() { onSnapshot(docs) })
	}

	go func() {
		defer close(s.done)
		defer stop()
		defer cancel()

		if !snapshot() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-errs:
				if ctx.Err() != nil {
					return
				}
				if !ok || err == nil {
					err = ErrSubscriptionClosed
				}
				s.fail(onError, err)
				return
			case _, ok := <-events:
				if ctx.Err() != nil {
					return
				}
				if !ok {
					// O driver envia o erro antes de fechar events.
					select {
					case err, ok := <-errs:
						if ok && err != nil {
							s.fail(onError, err)
							return
						}
					default:
					}
					s.fail(onError, ErrSubscriptionClosed)
					return
				}
				if !snapshot() {
					return
				}
			}
		}
	}()
	return s
}

// coalesce transforma uma sequência de notificações num canal de sinal com buffer 1:
// como cada sinal produz um snapshot completo, sinais acumulados podem fundir-se.
func coalesce[T any](in <-chan T) <-chan struct{} {
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		for range in {
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}()
	return out
}
