// Package cache decoradores en memoria sobre los puertos de persistencia.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

var _ repository.MasterDataRepository = (*MasterData)(nil)

// MasterData cachea solo resultados positivos: un id que existía sigue existiendo (los datos
// maestros no se borran desde aquí), pero un id ausente puede crearse en cualquier momento.
type MasterData struct {
	next  repository.MasterDataRepository
	cache *gocache.Cache
}

// NewMasterData envuelve next con una caché de expiración ttl.
func NewMasterData(next repository.MasterDataRepository, ttl time.Duration) *MasterData {
	return &MasterData{next: next, cache: gocache.New(ttl, 2*ttl)}
}

func (m *MasterData) Exists(ctx context.Context, kind entity.MasterKind, id string) (bool, error) {
	key := string(kind) + ":" + id
	if _, found := m.cache.Get(key); found {
		return true, nil
	}
	ok, err := m.next.Exists(ctx, kind, id)
	if err != nil || !ok {
		return ok, err
	}
	m.cache.SetDefault(key, struct{}{})
	return true, nil
}
