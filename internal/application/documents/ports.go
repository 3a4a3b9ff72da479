package documents

import (
	"context"

	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con los repositorios atados a ella.
// La asignación de correlativo y el insert del documento comparten esa transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error
}

// Defaults ventanas de fechas derivadas cuando el request no las informa.
type Defaults struct {
	ContractValidityDays  int
	QuotationValidityDays int
	WorkOrderDueDays      int
}
