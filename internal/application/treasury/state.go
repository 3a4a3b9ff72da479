package treasury

import (
	"time"

	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
)

// ensurePending: solo un movimiento PENDIENTE admite enmiendas, borrado o validación.
func ensurePending(m *entity.TreasuryMovement, action string) error {
	if m.IsPending() {
		return nil
	}
	return domain.Validation("state", "cannot %s movement %s: state is %s", action, m.ID, m.State)
}

// markValidated única transición permitida: PENDIENTE → VALIDADO.
func markValidated(m *entity.TreasuryMovement, at time.Time) error {
	if err := ensurePending(m, "validate"); err != nil {
		return err
	}
	m.State = entity.MovementStateValidated
	m.ValidatedAt = &at
	m.UpdatedAt = at
	return nil
}
