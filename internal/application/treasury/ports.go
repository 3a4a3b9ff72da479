package treasury

import (
	"context"

	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción; validación del movimiento y conciliación del origen
// comparten la misma.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error
}

// ArchiveScheduler archiva un comprobante fuera de la transacción. done se invoca una vez por
// trabajo, con archivedPath vacío si no hubo copia; un fallo nunca llega al llamador.
type ArchiveScheduler interface {
	Schedule(ctx context.Context, sourcePath string, done func(ctx context.Context, sourcePath, archivedPath string))
}
