package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
)

// TreasuryMovementRepository persistencia del libro de caja.
type TreasuryMovementRepository interface {
	Create(ctx context.Context, m *entity.TreasuryMovement) error
	// Update persiste estado y campos editables. El caller garantiza que el movimiento estaba PENDIENTE.
	Update(ctx context.Context, m *entity.TreasuryMovement) error
	GetByID(ctx context.Context, id string) (*entity.TreasuryMovement, error)
	// GetForUpdate lee el movimiento bloqueando la fila. Devuelve nil, nil si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.TreasuryMovement, error)
	// Delete elimina un movimiento solo si sigue PENDIENTE; devuelve false si no borró nada.
	Delete(ctx context.Context, id string) (bool, error)
	// UpdateArchivedReceipt reemplaza sourceURL por archivedURL tras archivarlo (metadato de archivo,
	// permitido también sobre movimientos validados). Solo escribe si el comprobante sigue siendo
	// sourceURL; devuelve false si fue reemplazado o el movimiento ya no existe.
	UpdateArchivedReceipt(ctx context.Context, id, sourceURL, archivedURL string, archivedAt time.Time) (bool, error)
}
