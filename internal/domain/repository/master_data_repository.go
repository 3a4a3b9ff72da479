package repository

import (
	"context"

	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
)

// MasterDataRepository consultas de existencia sobre datos maestros (nunca se mutan aquí).
type MasterDataRepository interface {
	Exists(ctx context.Context, kind entity.MasterKind, id string) (bool, error)
}
