package repository

import (
	"context"

	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
)

// ContractRepository persistencia de contratos. Update nunca toca la numeración.
type ContractRepository interface {
	Create(ctx context.Context, c *entity.Contract) error
	Update(ctx context.Context, c *entity.Contract) error
	GetByID(ctx context.Context, id string) (*entity.Contract, error)
	// ExistsActiveForVessel indica si la embarcación ya tiene un contrato vigente distinto de excludeID.
	ExistsActiveForVessel(ctx context.Context, vesselID, excludeID string) (bool, error)
}

// SalesQuotationRepository persistencia de cotizaciones de venta.
type SalesQuotationRepository interface {
	Create(ctx context.Context, q *entity.SalesQuotation) error
	Update(ctx context.Context, q *entity.SalesQuotation) error
	GetByID(ctx context.Context, id string) (*entity.SalesQuotation, error)
}

// WorkOrderRepository persistencia de órdenes de trabajo.
type WorkOrderRepository interface {
	Create(ctx context.Context, w *entity.WorkOrder) error
	Update(ctx context.Context, w *entity.WorkOrder) error
	GetByID(ctx context.Context, id string) (*entity.WorkOrder, error)
}
