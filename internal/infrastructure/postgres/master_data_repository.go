package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

var _ repository.MasterDataRepository = (*MasterDataRepo)(nil)

// masterTables catálogo → tabla. Solo estas tablas se consultan.
var masterTables = map[entity.MasterKind]string{
	entity.MasterCompany:      "companies",
	entity.MasterEntity:       "entities",
	entity.MasterEmployee:     "employees",
	entity.MasterVessel:       "vessels",
	entity.MasterCurrency:     "currencies",
	entity.MasterAccount:      "accounts",
	entity.MasterMovementType: "movement_types",
	entity.MasterProduct:      "products",
}

// MasterDataRepo consultas de existencia sobre datos maestros.
type MasterDataRepo struct {
	q Querier
}

// NewMasterDataRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMasterDataRepository(q Querier) *MasterDataRepo {
	return &MasterDataRepo{q: q}
}

func (r *MasterDataRepo) Exists(ctx context.Context, kind entity.MasterKind, id string) (bool, error) {
	table, ok := masterTables[kind]
	if !ok {
		return false, fmt.Errorf("unknown master data kind %q", kind)
	}
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table)
	if err := r.q.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, classify("check "+string(kind), err)
	}
	return exists, nil
}
