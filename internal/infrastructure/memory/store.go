// Package memory implementa los puertos de persistencia en memoria con semántica transaccional:
// Run serializa las transacciones y revierte todo el estado si fn devuelve error. Se usa en
// tests de casos de uso y handlers donde levantar PostgreSQL no aporta.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

type state struct {
	series          map[string]entity.DocumentSeries
	contracts       map[string]entity.Contract
	quotations      map[string]entity.SalesQuotation
	workOrders      map[string]entity.WorkOrder
	movements       map[string]entity.TreasuryMovement
	fishingInd      map[string]entity.FishingIndustrialSettlement
	fishingCons     map[string]entity.FishingConsumptionSettlement
	procurement     map[string]entity.ProcurementSettlement
	sales           map[string]entity.SalesSettlement
	maintenance     map[string]entity.MaintenanceSettlement
	serviceContract map[string]entity.ServiceContractSettlement
	master          map[entity.MasterKind]map[string]bool
	syncWrites      map[string]int
}

func newState() *state {
	return &state{
		series:          map[string]entity.DocumentSeries{},
		contracts:       map[string]entity.Contract{},
		quotations:      map[string]entity.SalesQuotation{},
		workOrders:      map[string]entity.WorkOrder{},
		movements:       map[string]entity.TreasuryMovement{},
		fishingInd:      map[string]entity.FishingIndustrialSettlement{},
		fishingCons:     map[string]entity.FishingConsumptionSettlement{},
		procurement:     map[string]entity.ProcurementSettlement{},
		sales:           map[string]entity.SalesSettlement{},
		maintenance:     map[string]entity.MaintenanceSettlement{},
		serviceContract: map[string]entity.ServiceContractSettlement{},
		master:          map[entity.MasterKind]map[string]bool{},
		syncWrites:      map[string]int{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// clone copia superficial por valor; las entidades se guardan por valor, así que basta.
func (s *state) clone() *state {
	master := make(map[entity.MasterKind]map[string]bool, len(s.master))
	for k, v := range s.master {
		master[k] = cloneMap(v)
	}
	return &state{
		series:          cloneMap(s.series),
		contracts:       cloneMap(s.contracts),
		quotations:      cloneMap(s.quotations),
		workOrders:      cloneMap(s.workOrders),
		movements:       cloneMap(s.movements),
		fishingInd:      cloneMap(s.fishingInd),
		fishingCons:     cloneMap(s.fishingCons),
		procurement:     cloneMap(s.procurement),
		sales:           cloneMap(s.sales),
		maintenance:     cloneMap(s.maintenance),
		serviceContract: cloneMap(s.serviceContract),
		master:          master,
		syncWrites:      cloneMap(s.syncWrites),
	}
}

// Store almacén en memoria. El valor cero no es usable: construir con NewStore.
type Store struct {
	mu       sync.Mutex
	st       *state
	failures map[string]error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState(), failures: map[string]error{}}
}

// Run ejecuta fn dentro de una "transacción": exclusión mutua total y rollback del estado si falla.
func (s *Store) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(&unitOfWork{store: s, inTx: true}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// Repos devuelve repositorios fuera de transacción (cada llamada toma el lock por su cuenta).
func (s *Store) Repos() repository.UnitOfWork {
	return &unitOfWork{store: s}
}

// FailNext hace que la próxima operación op ("contracts.create", "movements.update", ...) falle con err.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) takeFailure(op string) error {
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return err
	}
	return nil
}

// SyncWrites cuántas veces se escribió el bloque de tesorería de una liquidación.
func (s *Store) SyncWrites(module entity.OriginModule, id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.syncWrites[syncKey(module, id)]
}

func syncKey(module entity.OriginModule, id string) string {
	return fmt.Sprintf("%d/%s", int(module), id)
}

// AddSeries siembra una serie de numeración.
func (s *Store) AddSeries(series entity.DocumentSeries) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.series[series.ID] = series
}

// Series devuelve una copia de la serie, o nil.
func (s *Store) Series(id string) *entity.DocumentSeries {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.st.series[id]
	if !ok {
		return nil
	}
	return &v
}

// AddMaster registra ids existentes de un catálogo maestro.
func (s *Store) AddMaster(kind entity.MasterKind, ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.master[kind] == nil {
		s.st.master[kind] = map[string]bool{}
	}
	for _, id := range ids {
		s.st.master[kind][id] = true
	}
}

// AddSettlement siembra una liquidación pendiente de cualquier módulo.
func (s *Store) AddSettlement(rec any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r := rec.(type) {
	case entity.FishingIndustrialSettlement:
		s.st.fishingInd[r.ID] = r
	case entity.FishingConsumptionSettlement:
		s.st.fishingCons[r.ID] = r
	case entity.ProcurementSettlement:
		s.st.procurement[r.ID] = r
	case entity.SalesSettlement:
		s.st.sales[r.ID] = r
	case entity.MaintenanceSettlement:
		s.st.maintenance[r.ID] = r
	case entity.ServiceContractSettlement:
		s.st.serviceContract[r.ID] = r
	default:
		panic(fmt.Sprintf("memory: settlement type %T no soportado", rec))
	}
}

// AddMovement siembra un movimiento tal cual, sin pasar por las validaciones de creación.
func (s *Store) AddMovement(m entity.TreasuryMovement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.movements[m.ID] = m
}

// SettlementSync devuelve el bloque de tesorería actual de una liquidación.
func (s *Store) SettlementSync(module entity.OriginModule, id string) (entity.TreasurySync, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch module {
	case entity.OriginFishingIndustrial:
		r, ok := s.st.fishingInd[id]
		return r.Sync, ok
	case entity.OriginFishingConsumption:
		r, ok := s.st.fishingCons[id]
		return r.Sync, ok
	case entity.OriginProcurement:
		r, ok := s.st.procurement[id]
		return r.Sync, ok
	case entity.OriginSales:
		r, ok := s.st.sales[id]
		return r.Sync, ok
	case entity.OriginMaintenance:
		r, ok := s.st.maintenance[id]
		return r.Sync, ok
	case entity.OriginServiceContract:
		r, ok := s.st.serviceContract[id]
		return r.Sync, ok
	}
	return entity.TreasurySync{}, false
}

// FishingIndustrialProduct devuelve el producto copiado a una liquidación de pesca industrial.
func (s *Store) FishingIndustrialProduct(id string) *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.fishingInd[id].ProductID
}

type unitOfWork struct {
	store *Store
	inTx  bool
}

// lock toma el mutex solo fuera de transacción; dentro de Run ya está tomado.
func (u *unitOfWork) lock() func() {
	if u.inTx {
		return func() {}
	}
	u.store.mu.Lock()
	return u.store.mu.Unlock
}

func (u *unitOfWork) Series() repository.DocumentSeriesRepository          { return seriesRepo{u} }
func (u *unitOfWork) Contracts() repository.ContractRepository             { return contractRepo{u} }
func (u *unitOfWork) SalesQuotations() repository.SalesQuotationRepository { return quotationRepo{u} }
func (u *unitOfWork) WorkOrders() repository.WorkOrderRepository           { return workOrderRepo{u} }
func (u *unitOfWork) Movements() repository.TreasuryMovementRepository     { return movementRepo{u} }
func (u *unitOfWork) Settlements() repository.SettlementRepository         { return settlementRepo{u} }
func (u *unitOfWork) MasterData() repository.MasterDataRepository          { return masterRepo{u} }
