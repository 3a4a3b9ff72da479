package memory

import (
	"context"

	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
)

type settlementRepo struct{ u *unitOfWork }

func fishingIndTable(st *state) map[string]entity.FishingIndustrialSettlement { return st.fishingInd }
func fishingConsTable(st *state) map[string]entity.FishingConsumptionSettlement {
	return st.fishingCons
}
func procurementTable(st *state) map[string]entity.ProcurementSettlement { return st.procurement }
func salesTable(st *state) map[string]entity.SalesSettlement             { return st.sales }
func maintenanceTable(st *state) map[string]entity.MaintenanceSettlement { return st.maintenance }
func serviceContractTable(st *state) map[string]entity.ServiceContractSettlement {
	return st.serviceContract
}

// find y save comparten la mecánica; cada módulo conserva su propio mapa y tipo.
func find[T any](r settlementRepo, table func(*state) map[string]T, id string) *T {
	defer r.u.lock()()
	v, ok := table(r.u.store.st)[id]
	if !ok {
		return nil
	}
	return &v
}

func save[T any](r settlementRepo, table func(*state) map[string]T, module entity.OriginModule, id string, v T) error {
	defer r.u.lock()()
	m := table(r.u.store.st)
	if err := r.u.store.takeFailure("settlements.save"); err != nil {
		return err
	}
	if _, ok := m[id]; !ok {
		return domain.NotFound("origin_record_id", "%s %s not found", module, id)
	}
	m[id] = v
	r.u.store.st.syncWrites[syncKey(module, id)]++
	return nil
}

func (r settlementRepo) FindFishingIndustrial(ctx context.Context, id string) (*entity.FishingIndustrialSettlement, error) {
	return find(r, fishingIndTable, id), nil
}

func (r settlementRepo) SaveFishingIndustrialSync(ctx context.Context, s *entity.FishingIndustrialSettlement) error {
	return save(r, fishingIndTable, entity.OriginFishingIndustrial, s.ID, *s)
}

func (r settlementRepo) FindFishingConsumption(ctx context.Context, id string) (*entity.FishingConsumptionSettlement, error) {
	return find(r, fishingConsTable, id), nil
}

func (r settlementRepo) SaveFishingConsumptionSync(ctx context.Context, s *entity.FishingConsumptionSettlement) error {
	return save(r, fishingConsTable, entity.OriginFishingConsumption, s.ID, *s)
}

func (r settlementRepo) FindProcurement(ctx context.Context, id string) (*entity.ProcurementSettlement, error) {
	return find(r, procurementTable, id), nil
}

func (r settlementRepo) SaveProcurementSync(ctx context.Context, s *entity.ProcurementSettlement) error {
	return save(r, procurementTable, entity.OriginProcurement, s.ID, *s)
}

func (r settlementRepo) FindSales(ctx context.Context, id string) (*entity.SalesSettlement, error) {
	return find(r, salesTable, id), nil
}

func (r settlementRepo) SaveSalesSync(ctx context.Context, s *entity.SalesSettlement) error {
	return save(r, salesTable, entity.OriginSales, s.ID, *s)
}

func (r settlementRepo) FindMaintenance(ctx context.Context, id string) (*entity.MaintenanceSettlement, error) {
	return find(r, maintenanceTable, id), nil
}

func (r settlementRepo) SaveMaintenanceSync(ctx context.Context, s *entity.MaintenanceSettlement) error {
	return save(r, maintenanceTable, entity.OriginMaintenance, s.ID, *s)
}

func (r settlementRepo) FindServiceContract(ctx context.Context, id string) (*entity.ServiceContractSettlement, error) {
	return find(r, serviceContractTable, id), nil
}

func (r settlementRepo) SaveServiceContractSync(ctx context.Context, s *entity.ServiceContractSettlement) error {
	return save(r, serviceContractTable, entity.OriginServiceContract, s.ID, *s)
}
