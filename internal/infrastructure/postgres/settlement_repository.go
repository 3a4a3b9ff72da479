package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

var _ repository.SettlementRepository = (*SettlementRepo)(nil)

// Tablas de liquidación por módulo. Son constantes: nunca se arma SQL con nombres externos.
const (
	tableFishingIndustrial  = "fishing_industrial_settlements"
	tableFishingConsumption = "fishing_consumption_settlements"
	tableProcurement        = "procurement_settlements"
	tableSales              = "sales_settlements"
	tableMaintenance        = "maintenance_settlements"
	tableServiceContract    = "service_contract_settlements"
)

const syncColumns = `treasury_validated, treasury_validation_date, treasury_movement_id, entity_id,
	currency_id, no_invoice, document_url, receipt_url`

// SettlementRepo liquidaciones pendientes de los módulos de origen.
type SettlementRepo struct {
	q Querier
}

// NewSettlementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettlementRepository(q Querier) *SettlementRepo {
	return &SettlementRepo{q: q}
}

func syncDest(s *entity.TreasurySync) []any {
	return []any{
		&s.TreasuryValidated, &s.TreasuryValidationDate, &s.TreasuryMovementID, &s.EntityID,
		&s.CurrencyID, &s.NoInvoice, &s.DocumentURL, &s.ReceiptURL,
	}
}

// find lee y bloquea la fila; found=false si no existe.
func (r *SettlementRepo) find(ctx context.Context, table, cols, id string, dest ...any) (bool, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE id = $1 FOR UPDATE`, cols, syncColumns, table)
	if err := r.q.QueryRow(ctx, query, id).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, classify("get "+table, err)
	}
	return true, nil
}

// saveSync escribe solo el bloque de tesorería (y extra, p. ej. product_id).
func (r *SettlementRepo) saveSync(ctx context.Context, table, id string, s entity.TreasurySync, extra string, extraArgs ...any) error {
	query := fmt.Sprintf(`
		UPDATE %s SET treasury_validated = $2, treasury_validation_date = $3, treasury_movement_id = $4,
			entity_id = $5, currency_id = $6, no_invoice = $7, document_url = $8, receipt_url = $9%s
		WHERE id = $1`, table, extra)
	args := append([]any{
		id, s.TreasuryValidated, s.TreasuryValidationDate, s.TreasuryMovementID, s.EntityID,
		s.CurrencyID, s.NoInvoice, s.DocumentURL, s.ReceiptURL,
	}, extraArgs...)
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return classify("update "+table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("origin_record_id", "%s %s not found", table, id)
	}
	return nil
}

func (r *SettlementRepo) FindFishingIndustrial(ctx context.Context, id string) (*entity.FishingIndustrialSettlement, error) {
	var s entity.FishingIndustrialSettlement
	dest := append([]any{&s.ID, &s.TripID, &s.ProductID, &s.Amount}, syncDest(&s.Sync)...)
	ok, err := r.find(ctx, tableFishingIndustrial, "id, trip_id, product_id, amount", id, dest...)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (r *SettlementRepo) SaveFishingIndustrialSync(ctx context.Context, s *entity.FishingIndustrialSettlement) error {
	return r.saveSync(ctx, tableFishingIndustrial, s.ID, s.Sync, ", product_id = $10", s.ProductID)
}

func (r *SettlementRepo) FindFishingConsumption(ctx context.Context, id string) (*entity.FishingConsumptionSettlement, error) {
	var s entity.FishingConsumptionSettlement
	dest := append([]any{&s.ID, &s.TripID, &s.Amount}, syncDest(&s.Sync)...)
	ok, err := r.find(ctx, tableFishingConsumption, "id, trip_id, amount", id, dest...)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (r *SettlementRepo) SaveFishingConsumptionSync(ctx context.Context, s *entity.FishingConsumptionSettlement) error {
	return r.saveSync(ctx, tableFishingConsumption, s.ID, s.Sync, "")
}

func (r *SettlementRepo) FindProcurement(ctx context.Context, id string) (*entity.ProcurementSettlement, error) {
	var s entity.ProcurementSettlement
	dest := append([]any{&s.ID, &s.PurchaseOrderID, &s.Amount}, syncDest(&s.Sync)...)
	ok, err := r.find(ctx, tableProcurement, "id, purchase_order_id, amount", id, dest...)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (r *SettlementRepo) SaveProcurementSync(ctx context.Context, s *entity.ProcurementSettlement) error {
	return r.saveSync(ctx, tableProcurement, s.ID, s.Sync, "")
}

func (r *SettlementRepo) FindSales(ctx context.Context, id string) (*entity.SalesSettlement, error) {
	var s entity.SalesSettlement
	dest := append([]any{&s.ID, &s.SalesOrderID, &s.Amount}, syncDest(&s.Sync)...)
	ok, err := r.find(ctx, tableSales, "id, sales_order_id, amount", id, dest...)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (r *SettlementRepo) SaveSalesSync(ctx context.Context, s *entity.SalesSettlement) error {
	return r.saveSync(ctx, tableSales, s.ID, s.Sync, "")
}

func (r *SettlementRepo) FindMaintenance(ctx context.Context, id string) (*entity.MaintenanceSettlement, error) {
	var s entity.MaintenanceSettlement
	dest := append([]any{&s.ID, &s.WorkOrderID, &s.Amount}, syncDest(&s.Sync)...)
	ok, err := r.find(ctx, tableMaintenance, "id, work_order_id, amount", id, dest...)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (r *SettlementRepo) SaveMaintenanceSync(ctx context.Context, s *entity.MaintenanceSettlement) error {
	return r.saveSync(ctx, tableMaintenance, s.ID, s.Sync, "")
}

func (r *SettlementRepo) FindServiceContract(ctx context.Context, id string) (*entity.ServiceContractSettlement, error) {
	var s entity.ServiceContractSettlement
	dest := append([]any{&s.ID, &s.ContractID, &s.Amount}, syncDest(&s.Sync)...)
	ok, err := r.find(ctx, tableServiceContract, "id, contract_id, amount", id, dest...)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (r *SettlementRepo) SaveServiceContractSync(ctx context.Context, s *entity.ServiceContractSettlement) error {
	return r.saveSync(ctx, tableServiceContract, s.ID, s.Sync, "")
}
