// Package draftrepo guarda os rascunhos de entrega em Redis enquanto a equipa os constrói.
package draftrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lojasocial/internal/domain"
	"lojasocial/internal/errors"
	"lojasocial/internal/pkg/cache"
	"lojasocial/internal/pkg/logger"
)

const draftKey = "rascunho:entrega:%s"

type DraftRepository struct {
	cache  cache.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewDraftRepository(cacheClient cache.Client, ttl time.Duration, log logger.Logger) *DraftRepository {
	return &DraftRepository{cache: cacheClient, ttl: ttl, logger: log}
}

// Save grava o rascunho e renova a expiração.
func (r *DraftRepository) Save(ctx context.Context, draft domain.DeliveryDraft) error {
	draft.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(draft)
	if err != nil {
		return errors.NewInternalError("Falha ao serializar rascunho", err)
	}
	if err := r.cache.Set(ctx, fmt.Sprintf(draftKey, draft.ID), data, r.ttl); err != nil {
		r.logger.Error("Falha ao gravar rascunho no Redis.", err)
		return errors.NewDBError("Falha ao gravar rascunho", err)
	}
	return nil
}

func (r *DraftRepository) Get(ctx context.Context, id string) (domain.DeliveryDraft, error) {
	raw, err := r.cache.Get(ctx, fmt.Sprintf(draftKey, id))
	if err == cache.ErrCacheMiss {
		return domain.DeliveryDraft{}, errors.NewNotFoundError(fmt.Sprintf("Rascunho %s não existe ou expirou.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao ler rascunho do Redis.", err)
		return domain.DeliveryDraft{}, errors.NewDBError("Falha ao ler rascunho", err)
	}
	var draft domain.DeliveryDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return domain.DeliveryDraft{}, errors.NewInternalError("Rascunho inválido", err)
	}
	return draft, nil
}

func (r *DraftRepository) Delete(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, fmt.Sprintf(draftKey, id)); err != nil {
		r.logger.Error("Falha ao apagar rascunho do Redis.", err)
		return errors.NewDBError("Falha ao apagar rascunho", err)
	}
	return nil
}
