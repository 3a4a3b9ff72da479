package treasury

import (
	"context"
	"fmt"

	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

// Reconciler propaga la validación de un movimiento a la liquidación del módulo que lo originó.
type Reconciler struct {
	handlers map[entity.OriginModule]SettlementHandler
}

// NewReconciler exige exactamente un handler por módulo de origen conocido.
func NewReconciler(handlers ...SettlementHandler) (*Reconciler, error) {
	r := &Reconciler{handlers: make(map[entity.OriginModule]SettlementHandler, len(handlers))}
	for _, h := range handlers {
		if _, dup := r.handlers[h.Module()]; dup {
			return nil, fmt.Errorf("treasury: duplicate settlement handler for %s", h.Module())
		}
		r.handlers[h.Module()] = h
	}
	for _, m := range entity.OriginModules() {
		if _, ok := r.handlers[m]; !ok {
			return nil, fmt.Errorf("treasury: no settlement handler for %s (%d)", m, int(m))
		}
	}
	return r, nil
}

// Locate devuelve la liquidación pendiente referida por origin. Ausente: error de validación
// que nombra el módulo. Ya validada en tesorería: conflicto.
func (r *Reconciler) Locate(ctx context.Context, repo repository.SettlementRepository, origin entity.Origin) (PendingSettlement, error) {
	if origin == nil {
		return nil, domain.Validation("origin_module", "movement has no origin")
	}
	h, ok := r.handlers[origin.Module()]
	if !ok {
		return nil, domain.Validation("origin_module", "unsupported origin module: %d", int(origin.Module()))
	}
	rec, err := h.Locate(ctx, repo, origin.RecordID())
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.Validation("origin_record_id", "%s %s not found", origin.Module(), origin.RecordID())
	}
	if rec.Sync().TreasuryValidated {
		return nil, domain.Conflict("origin_record_id", "%s %s is already validated by treasury", origin.Module(), origin.RecordID())
	}
	return rec, nil
}

// Reconcile localiza la liquidación y le aplica el snapshot del movimiento.
func (r *Reconciler) Reconcile(ctx context.Context, repo repository.SettlementRepository, origin entity.Origin, snap entity.MovementSnapshot) error {
	rec, err := r.Locate(ctx, repo, origin)
	if err != nil {
		return err
	}
	return rec.ApplyValidation(ctx, snap)
}
