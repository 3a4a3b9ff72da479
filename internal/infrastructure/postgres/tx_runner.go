package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pesquera-erp/internal/application/documents"
	"github.com/jhoicas/pesquera-erp/internal/application/treasury"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

var (
	_ documents.TxRunner = (*TxRunner)(nil)
	_ treasury.TxRunner  = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción READ COMMITTED, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los bloqueos de fila (FOR UPDATE) de series y movimientos duran hasta el fin de la transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return classify("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUnitOfWork(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return classify("commit transaction", fmt.Errorf("commit: %w", err))
	}
	return nil
}

// UnitOfWork repositorios sobre un mismo Querier (pool o tx).
type UnitOfWork struct {
	q Querier
}

// NewUnitOfWork ata los repositorios a q. Con el pool, cada llamada es su propia transacción.
func NewUnitOfWork(q Querier) *UnitOfWork {
	return &UnitOfWork{q: q}
}

func (u *UnitOfWork) Series() repository.DocumentSeriesRepository {
	return NewDocumentSeriesRepository(u.q)
}
func (u *UnitOfWork) Contracts() repository.ContractRepository { return NewContractRepository(u.q) }
func (u *UnitOfWork) SalesQuotations() repository.SalesQuotationRepository {
	return NewSalesQuotationRepository(u.q)
}
func (u *UnitOfWork) WorkOrders() repository.WorkOrderRepository { return NewWorkOrderRepository(u.q) }
func (u *UnitOfWork) Movements() repository.TreasuryMovementRepository {
	return NewTreasuryMovementRepository(u.q)
}
func (u *UnitOfWork) Settlements() repository.SettlementRepository {
	return NewSettlementRepository(u.q)
}
func (u *UnitOfWork) MasterData() repository.MasterDataRepository {
	return NewMasterDataRepository(u.q)
}
