package treasury_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pesquera-erp/internal/application/dto"
	"github.com/jhoicas/pesquera-erp/internal/application/masterdata"
	"github.com/jhoicas/pesquera-erp/internal/application/treasury"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/infrastructure/evidence"
	"github.com/jhoicas/pesquera-erp/internal/infrastructure/memory"
)

const (
	accountID  = "account-1"
	companyID  = "company-1"
	typeID     = "movement-type-1"
	currencyID = "PEN"
	entityID   = "entity-1"
	productID  = "product-harina"
)

type fixture struct {
	store   *memory.Store
	fs      afero.Fs
	service *treasury.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, func(a *evidence.Archiver) treasury.ArchiveScheduler {
		return evidence.NewInlineScheduler(a)
	})
}

// newFixtureWith permite sustituir el scheduler de archivado.
func newFixtureWith(t *testing.T, scheduler func(*evidence.Archiver) treasury.ArchiveScheduler) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.AddMaster(entity.MasterAccount, accountID, "account-2")
	store.AddMaster(entity.MasterCompany, companyID)
	store.AddMaster(entity.MasterMovementType, typeID)
	store.AddMaster(entity.MasterCurrency, currencyID)
	store.AddMaster(entity.MasterEntity, entityID)
	store.AddMaster(entity.MasterProduct, productID)

	fs := afero.NewMemMapFs()
	archiver := evidence.NewArchiver(fs, evidence.NewLocalDestination(fs, "archive"), zerolog.Nop())

	reconciler, err := treasury.NewReconciler(treasury.DefaultHandlers()...)
	require.NoError(t, err)

	repos := store.Repos()
	svc := treasury.NewService(store, repos.Movements(), masterdata.NewChecker(repos.MasterData()),
		reconciler, scheduler(archiver), zerolog.Nop())
	return &fixture{store: store, fs: fs, service: svc}
}

func (f *fixture) writeUpload(t *testing.T, p string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(f.fs, p, []byte("comprobante"), 0o644))
}

func movementRequest(module entity.OriginModule, recordID string) dto.CreateTreasuryMovementRequest {
	return dto.CreateTreasuryMovementRequest{
		OriginAccountID: accountID,
		OriginCompanyID: companyID,
		MovementTypeID:  typeID,
		CurrencyID:      currencyID,
		Amount:          decimal.RequireFromString("1250.75"),
		OriginModule:    int(module),
		OriginRecordID:  recordID,
		EntityID:        strPtr(entityID),
	}
}

// seedAll siembra una liquidación pendiente por módulo, con id "<module>-1".
func seedAll(store *memory.Store) map[entity.OriginModule]string {
	ids := map[entity.OriginModule]string{
		entity.OriginFishingIndustrial:  "fi-1",
		entity.OriginFishingConsumption: "fc-1",
		entity.OriginProcurement:        "pr-1",
		entity.OriginSales:              "sa-1",
		entity.OriginMaintenance:        "mt-1",
		entity.OriginServiceContract:    "sc-1",
	}
	store.AddSettlement(entity.FishingIndustrialSettlement{ID: "fi-1", TripID: "trip-1"})
	store.AddSettlement(entity.FishingConsumptionSettlement{ID: "fc-1", TripID: "trip-2"})
	store.AddSettlement(entity.ProcurementSettlement{ID: "pr-1", PurchaseOrderID: "po-1"})
	store.AddSettlement(entity.SalesSettlement{ID: "sa-1", SalesOrderID: "so-1"})
	store.AddSettlement(entity.MaintenanceSettlement{ID: "mt-1", WorkOrderID: "wo-1"})
	store.AddSettlement(entity.ServiceContractSettlement{ID: "sc-1", ContractID: "ct-1"})
	return ids
}

func strPtr(s string) *string { return &s }

// capturingScheduler retiene los trabajos de archivado para completarlos en el orden que
// decida el test, como haría una cola con reintentos.
type capturingScheduler struct {
	mu   sync.Mutex
	jobs []capturedJob
}

type capturedJob struct {
	source string
	done   func(ctx context.Context, sourcePath, archivedPath string)
}

func (s *capturingScheduler) Schedule(_ context.Context, sourcePath string, done func(ctx context.Context, sourcePath, archivedPath string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, capturedJob{source: sourcePath, done: done})
}

func (s *capturingScheduler) job(t *testing.T, i int) capturedJob {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.Greater(t, len(s.jobs), i)
	return s.jobs[i]
}

func (s *capturingScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}
