//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/pesquera-erp/internal/application/documents"
	"github.com/jhoicas/pesquera-erp/internal/application/dto"
	"github.com/jhoicas/pesquera-erp/internal/application/masterdata"
	"github.com/jhoicas/pesquera-erp/internal/application/numbering"
	"github.com/jhoicas/pesquera-erp/internal/application/treasury"
	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/infrastructure/postgres"
)

// newTestPool levanta un PostgreSQL efímero con el esquema migrado y datos maestros mínimos.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("pesquera_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "no se pudo iniciar el contenedor de PostgreSQL")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(dsn, zerolog.Nop()))
	// Idempotente.
	require.NoError(t, postgres.Migrate(dsn, zerolog.Nop()))

	pool, err := postgres.NewPoolFromDSN(ctx, dsn, 60)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	seed := []string{
		`INSERT INTO companies (id) VALUES ('company-1')`,
		`INSERT INTO entities (id) VALUES ('entity-1')`,
		`INSERT INTO employees (id) VALUES ('employee-1')`,
		`INSERT INTO vessels (id) VALUES ('vessel-1')`,
		`INSERT INTO currencies (id) VALUES ('PEN')`,
		`INSERT INTO accounts (id) VALUES ('account-1')`,
		`INSERT INTO movement_types (id) VALUES ('type-1')`,
		`INSERT INTO products (id) VALUES ('product-1')`,
		`INSERT INTO document_series (id, company_id, document_type, serie, correlativo, left_zeros_series, left_zeros_correlativo)
		 VALUES ('serie-7', 'company-1', 'CONTRACT', '7', 10, 3, 6)`,
		`INSERT INTO fishing_industrial_settlements (id, trip_id) VALUES ('fi-1', 'trip-1')`,
		`INSERT INTO sales_settlements (id, sales_order_id, receipt_url) VALUES ('sa-1', 'so-1', 'uploads/sa-1.pdf')`,
	}
	for _, stmt := range seed {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err, stmt)
	}
	return pool
}

func newContractUseCase(pool *pgxpool.Pool) *documents.ContractUseCase {
	tx := postgres.NewTxRunner(pool)
	uow := postgres.NewUnitOfWork(pool)
	refs := masterdata.NewChecker(uow.MasterData())
	issuer := documents.NewIssuer(tx, refs, numbering.NewAllocator(zerolog.Nop()), zerolog.Nop())
	return documents.NewContractUseCase(issuer, tx, uow.Contracts(), refs, documents.Defaults{ContractValidityDays: 365})
}

func contractRequest() dto.CreateContractRequest {
	return dto.CreateContractRequest{
		SeriesID:       "serie-7",
		CounterpartyID: "entity-1",
		ResponsibleID:  "employee-1",
		Amount:         decimal.NewFromInt(100),
		CurrencyID:     "PEN",
	}
}

func TestIntegration_ConcurrentIssuingIsGapFreeAndUnique(t *testing.T) {
	pool := newTestPool(t)
	uc := newContractUseCase(pool)
	const n = 50

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers []string
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := uc.Create(context.Background(), "company-1", contractRequest())
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			numbers = append(numbers, out.Numbering.FullNumber)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, numbers, n)
	sort.Strings(numbers)
	for i, got := range numbers {
		assert.Equal(t, fmt.Sprintf("007-%06d", 11+i), got)
	}
	var correlativo int64
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT correlativo FROM document_series WHERE id = 'serie-7'`).Scan(&correlativo))
	assert.Equal(t, int64(10+n), correlativo)
}

func TestIntegration_FailedInsertLeavesCounter(t *testing.T) {
	pool := newTestPool(t)
	uc := newContractUseCase(pool)
	// Un número ya ocupado por fuera de la serie hace fallar el insert tras la asignación.
	_, err := pool.Exec(context.Background(), `
		INSERT INTO contracts (id, company_id, series_id, num_series, num_correlativo, full_number,
			counterparty_id, responsible_id, document_date, start_date, end_date, currency_id)
		VALUES ('0b7e0c55-8a43-4a8f-9f0c-2f5a3c1d9e01', 'company-1', 'serie-7', '007', '000011', '007-000011',
			'entity-1', 'employee-1', CURRENT_DATE, CURRENT_DATE, CURRENT_DATE, 'PEN')`)
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), "company-1", contractRequest())

	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	var correlativo int64
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT correlativo FROM document_series WHERE id = 'serie-7'`).Scan(&correlativo))
	assert.Equal(t, int64(10), correlativo)
}

func TestIntegration_ValidateReconcilesOnce(t *testing.T) {
	pool := newTestPool(t)
	tx := postgres.NewTxRunner(pool)
	uow := postgres.NewUnitOfWork(pool)
	reconciler, err := treasury.NewReconciler(treasury.DefaultHandlers()...)
	require.NoError(t, err)
	svc := treasury.NewService(tx, uow.Movements(), masterdata.NewChecker(uow.MasterData()), reconciler, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), dto.CreateTreasuryMovementRequest{
		OriginAccountID: "account-1",
		OriginCompanyID: "company-1",
		MovementTypeID:  "type-1",
		CurrencyID:      "PEN",
		Amount:          decimal.RequireFromString("320.40"),
		OriginModule:    int(entity.OriginFishingIndustrial),
		OriginRecordID:  "fi-1",
		ProductID:       strPtr("product-1"),
		EntityID:        strPtr("entity-1"),
	})
	require.NoError(t, err)

	validated, err := svc.Validate(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "VALIDADO", validated.State)

	_, err = svc.Validate(context.Background(), created.ID)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	var (
		validatedFlag bool
		movementID    string
		productID     *string
	)
	require.NoError(t, pool.QueryRow(context.Background(), `
		SELECT treasury_validated, treasury_movement_id::text, product_id
		FROM fishing_industrial_settlements WHERE id = 'fi-1'`).Scan(&validatedFlag, &movementID, &productID))
	assert.True(t, validatedFlag)
	assert.Equal(t, created.ID, movementID)
	require.NotNil(t, productID)
	assert.Equal(t, "product-1", *productID)

	err = svc.Delete(context.Background(), created.ID)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestIntegration_UnknownOriginCodeInRow(t *testing.T) {
	pool := newTestPool(t)
	_, err := pool.Exec(context.Background(), `
		INSERT INTO treasury_movements (id, origin_account_id, origin_company_id, movement_type_id, currency_id,
			amount, origin_module, origin_record_id)
		VALUES ('6f1c2a52-3f3e-4d5e-9a77-1b0c6a9d2e10', 'account-1', 'company-1', 'type-1', 'PEN', 10, 99, 'x-1')`)
	require.NoError(t, err)

	_, err = postgres.NewTreasuryMovementRepository(pool).GetByID(context.Background(), "6f1c2a52-3f3e-4d5e-9a77-1b0c6a9d2e10")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported origin module: 99")
}

func TestIntegration_ArchivedReceiptOnlyReplacesCurrentSource(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	const id = "0b7e4c1d-2a3f-4e5b-8c6d-7e8f9a0b1c2d"
	_, err := pool.Exec(ctx, `
		INSERT INTO treasury_movements (id, origin_account_id, origin_company_id, movement_type_id, currency_id,
			amount, origin_module, origin_record_id, receipt_url)
		VALUES ($1, 'account-1', 'company-1', 'type-1', 'PEN', 10, 5, 'sa-1', 'uploads/new.jpg')`, id)
	require.NoError(t, err)
	repo := postgres.NewTreasuryMovementRepository(pool)
	at := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

	updated, err := repo.UpdateArchivedReceipt(ctx, id, "uploads/old.jpg", "archive/2026/10/1-15102026.jpg", at)
	require.NoError(t, err)
	assert.False(t, updated)

	m, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "uploads/new.jpg", m.ReceiptURL)
	assert.Nil(t, m.ArchivedAt)

	updated, err = repo.UpdateArchivedReceipt(ctx, id, "uploads/new.jpg", "archive/2026/10/2-15102026.jpg", at)
	require.NoError(t, err)
	assert.True(t, updated)

	m, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "archive/2026/10/2-15102026.jpg", m.ReceiptURL)
	require.NotNil(t, m.ArchivedAt)
}

func strPtr(s string) *string { return &s }
