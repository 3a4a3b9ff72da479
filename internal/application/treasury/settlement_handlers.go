package treasury

import (
	"context"

	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

// SettlementHandler conoce la forma de la liquidación pendiente de un módulo de origen.
type SettlementHandler interface {
	Module() entity.OriginModule
	// Locate lee (y bloquea) la liquidación. Devuelve nil, nil si no existe.
	Locate(ctx context.Context, repo repository.SettlementRepository, recordID string) (PendingSettlement, error)
}

// PendingSettlement liquidación localizada, lista para recibir la validación de tesorería.
type PendingSettlement interface {
	Sync() entity.TreasurySync
	// ApplyValidation copia el snapshot del movimiento y persiste el bloque de tesorería.
	ApplyValidation(ctx context.Context, snap entity.MovementSnapshot) error
}

// DefaultHandlers un handler por cada módulo de origen conocido.
func DefaultHandlers() []SettlementHandler {
	return []SettlementHandler{
		FishingIndustrialHandler(),
		FishingConsumptionHandler(),
		ProcurementHandler(),
		SalesHandler(),
		MaintenanceHandler(),
		ServiceContractHandler(),
	}
}

// FishingIndustrialHandler la única liquidación que además recibe el producto.
func FishingIndustrialHandler() SettlementHandler {
	return &handler[entity.FishingIndustrialSettlement]{
		module: entity.OriginFishingIndustrial,
		find:   repository.SettlementRepository.FindFishingIndustrial,
		save:   repository.SettlementRepository.SaveFishingIndustrialSync,
		sync:   func(s *entity.FishingIndustrialSettlement) *entity.TreasurySync { return &s.Sync },
		extra: func(s *entity.FishingIndustrialSettlement, snap entity.MovementSnapshot) {
			if snap.ProductID != nil {
				product := *snap.ProductID
				s.ProductID = &product
			}
		},
	}
}

func FishingConsumptionHandler() SettlementHandler {
	return &handler[entity.FishingConsumptionSettlement]{
		module: entity.OriginFishingConsumption,
		find:   repository.SettlementRepository.FindFishingConsumption,
		save:   repository.SettlementRepository.SaveFishingConsumptionSync,
		sync:   func(s *entity.FishingConsumptionSettlement) *entity.TreasurySync { return &s.Sync },
	}
}

func ProcurementHandler() SettlementHandler {
	return &handler[entity.ProcurementSettlement]{
		module: entity.OriginProcurement,
		find:   repository.SettlementRepository.FindProcurement,
		save:   repository.SettlementRepository.SaveProcurementSync,
		sync:   func(s *entity.ProcurementSettlement) *entity.TreasurySync { return &s.Sync },
	}
}

func SalesHandler() SettlementHandler {
	return &handler[entity.SalesSettlement]{
		module: entity.OriginSales,
		find:   repository.SettlementRepository.FindSales,
		save:   repository.SettlementRepository.SaveSalesSync,
		sync:   func(s *entity.SalesSettlement) *entity.TreasurySync { return &s.Sync },
	}
}

func MaintenanceHandler() SettlementHandler {
	return &handler[entity.MaintenanceSettlement]{
		module: entity.OriginMaintenance,
		find:   repository.SettlementRepository.FindMaintenance,
		save:   repository.SettlementRepository.SaveMaintenanceSync,
		sync:   func(s *entity.MaintenanceSettlement) *entity.TreasurySync { return &s.Sync },
	}
}

func ServiceContractHandler() SettlementHandler {
	return &handler[entity.ServiceContractSettlement]{
		module: entity.OriginServiceContract,
		find:   repository.SettlementRepository.FindServiceContract,
		save:   repository.SettlementRepository.SaveServiceContractSync,
		sync:   func(s *entity.ServiceContractSettlement) *entity.TreasurySync { return &s.Sync },
	}
}

type handler[T any] struct {
	module entity.OriginModule
	find   func(repository.SettlementRepository, context.Context, string) (*T, error)
	save   func(repository.SettlementRepository, context.Context, *T) error
	sync   func(*T) *entity.TreasurySync
	extra  func(*T, entity.MovementSnapshot)
}

func (h *handler[T]) Module() entity.OriginModule { return h.module }

func (h *handler[T]) Locate(ctx context.Context, repo repository.SettlementRepository, recordID string) (PendingSettlement, error) {
	rec, err := h.find(repo, ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return &located[T]{h: h, repo: repo, rec: rec}, nil
}

type located[T any] struct {
	h    *handler[T]
	repo repository.SettlementRepository
	rec  *T
}

func (l *located[T]) Sync() entity.TreasurySync { return *l.h.sync(l.rec) }

func (l *located[T]) ApplyValidation(ctx context.Context, snap entity.MovementSnapshot) error {
	l.h.sync(l.rec).Apply(snap)
	if l.h.extra != nil {
		l.h.extra(l.rec, snap)
	}
	return l.h.save(l.repo, ctx, l.rec)
}
