package repository

import (
	"context"

	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
)

// SettlementRepository acceso a las liquidaciones pendientes de cada módulo. Cada forma de
// registro tiene su propio par de métodos; no hay acceso genérico por nombre de tabla.
// Los Find* bloquean la fila (FOR UPDATE) y devuelven nil, nil si no existe.
type SettlementRepository interface {
	FindFishingIndustrial(ctx context.Context, id string) (*entity.FishingIndustrialSettlement, error)
	SaveFishingIndustrialSync(ctx context.Context, s *entity.FishingIndustrialSettlement) error

	FindFishingConsumption(ctx context.Context, id string) (*entity.FishingConsumptionSettlement, error)
	SaveFishingConsumptionSync(ctx context.Context, s *entity.FishingConsumptionSettlement) error

	FindProcurement(ctx context.Context, id string) (*entity.ProcurementSettlement, error)
	SaveProcurementSync(ctx context.Context, s *entity.ProcurementSettlement) error

	FindSales(ctx context.Context, id string) (*entity.SalesSettlement, error)
	SaveSalesSync(ctx context.Context, s *entity.SalesSettlement) error

	FindMaintenance(ctx context.Context, id string) (*entity.MaintenanceSettlement, error)
	SaveMaintenanceSync(ctx context.Context, s *entity.MaintenanceSettlement) error

	FindServiceContract(ctx context.Context, id string) (*entity.ServiceContractSettlement, error)
	SaveServiceContractSync(ctx context.Context, s *entity.ServiceContractSettlement) error
}
