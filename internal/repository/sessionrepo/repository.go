// Package sessionrepo mantém em Redis a lista de tokens revogados por logout.
package sessionrepo

import (
	"context"
	"fmt"
	"time"

	"lojasocial/internal/errors"
	"lojasocial/internal/pkg/cache"
	"lojasocial/internal/pkg/logger"
)

const revokedKey = "token:revogado:%s"

type RevocationRepository struct {
	cache  cache.Client
	logger logger.Logger
}

func NewRevocationRepository(cacheClient cache.Client, log logger.Logger) *RevocationRepository {
	return &RevocationRepository{cache: cacheClient, logger: log}
}

// Revoke marca o token como revogado até expirar. Um token já expirado não é guardado.
func (r *RevocationRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.cache.Set(ctx, fmt.Sprintf(revokedKey, tokenID), "1", ttl); err != nil {
		r.logger.Error("Falha ao revogar token no Redis.", err)
		return errors.NewDBError("Falha ao revogar sessão", err)
	}
	r.logger.Debug("Token revogado.", map[string]interface{}{"jti": tokenID, "ttl": ttl.String()})
	return nil
}

func (r *RevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	revoked, err := r.cache.Exists(ctx, fmt.Sprintf(revokedKey, tokenID))
	if err != nil {
		r.logger.Error("Falha ao consultar tokens revogados.", err)
		return false, errors.NewDBError("Falha ao validar sessão", err)
	}
	return revoked, nil
}
