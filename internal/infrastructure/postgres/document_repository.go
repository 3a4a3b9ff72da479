package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

var (
	_ repository.ContractRepository       = (*ContractRepo)(nil)
	_ repository.SalesQuotationRepository = (*SalesQuotationRepo)(nil)
	_ repository.WorkOrderRepository      = (*WorkOrderRepo)(nil)
)

// createDocument traduce la colisión de (series_id, full_number) a un conflicto legible.
func createDocument(ctx context.Context, q Querier, op, query string, n entity.Numbering, args ...any) error {
	if _, err := q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err, seriesNumberConstraintSuffix) {
			return domain.Conflict("full_number", "document number %s already issued in series %s", n.FullNumber, n.SeriesID)
		}
		return classify(op, err)
	}
	return nil
}

// ContractRepo contratos sobre PostgreSQL.
type ContractRepo struct {
	q Querier
}

// NewContractRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

func (r *ContractRepo) Create(ctx context.Context, c *entity.Contract) error {
	return createDocument(ctx, r.q, "insert contract", `
		INSERT INTO contracts (id, company_id, series_id, num_series, num_correlativo, full_number,
			counterparty_id, responsible_id, vessel_id, document_date, start_date, end_date,
			amount, currency_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		c.Numbering,
		c.ID, c.CompanyID, c.Numbering.SeriesID, c.Numbering.NumSeries, c.Numbering.NumCorrelativo, c.Numbering.FullNumber,
		c.CounterpartyID, c.ResponsibleID, c.VesselID, c.DocumentDate, c.StartDate, c.EndDate,
		c.Amount, c.CurrencyID, c.Notes, c.CreatedAt, c.UpdatedAt,
	)
}

// Update no incluye columnas de numeración.
func (r *ContractRepo) Update(ctx context.Context, c *entity.Contract) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE contracts SET counterparty_id = $2, responsible_id = $3, vessel_id = $4, start_date = $5,
			end_date = $6, amount = $7, currency_id = $8, notes = $9, updated_at = $10
		WHERE id = $1`,
		c.ID, c.CounterpartyID, c.ResponsibleID, c.VesselID, c.StartDate,
		c.EndDate, c.Amount, c.CurrencyID, c.Notes, c.UpdatedAt,
	)
	if err != nil {
		return classify("update contract", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("id", "contract %s not found", c.ID)
	}
	return nil
}

func (r *ContractRepo) GetByID(ctx context.Context, id string) (*entity.Contract, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var c entity.Contract
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, series_id, num_series, num_correlativo, full_number, counterparty_id,
			responsible_id, vessel_id, document_date, start_date, end_date, amount, currency_id, notes,
			created_at, updated_at
		FROM contracts WHERE id = $1`, id).Scan(
		&c.ID, &c.CompanyID, &c.Numbering.SeriesID, &c.Numbering.NumSeries, &c.Numbering.NumCorrelativo,
		&c.Numbering.FullNumber, &c.CounterpartyID, &c.ResponsibleID, &c.VesselID, &c.DocumentDate,
		&c.StartDate, &c.EndDate, &c.Amount, &c.CurrencyID, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get contract", err)
	}
	return &c, nil
}

// ExistsActiveForVessel bloquea la embarcación antes de consultar, para que dos contratos
// concurrentes sobre la misma embarcación se serialicen.
func (r *ContractRepo) ExistsActiveForVessel(ctx context.Context, vesselID, excludeID string) (bool, error) {
	if _, err := r.q.Exec(ctx, `SELECT 1 FROM vessels WHERE id = $1 FOR UPDATE`, vesselID); err != nil {
		return false, classify("lock vessel", err)
	}
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM contracts
			WHERE vessel_id = $1 AND id::text <> $2 AND end_date >= CURRENT_DATE
		)`, vesselID, excludeID).Scan(&exists)
	if err != nil {
		return false, classify("check vessel contract", err)
	}
	return exists, nil
}

// SalesQuotationRepo cotizaciones de venta sobre PostgreSQL.
type SalesQuotationRepo struct {
	q Querier
}

// NewSalesQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesQuotationRepository(q Querier) *SalesQuotationRepo {
	return &SalesQuotationRepo{q: q}
}

func (r *SalesQuotationRepo) Create(ctx context.Context, s *entity.SalesQuotation) error {
	return createDocument(ctx, r.q, "insert sales quotation", `
		INSERT INTO sales_quotations (id, company_id, series_id, num_series, num_correlativo, full_number,
			customer_id, currency_id, document_date, valid_until, total, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		s.Numbering,
		s.ID, s.CompanyID, s.Numbering.SeriesID, s.Numbering.NumSeries, s.Numbering.NumCorrelativo, s.Numbering.FullNumber,
		s.CustomerID, s.CurrencyID, s.DocumentDate, s.ValidUntil, s.Total, s.Notes, s.CreatedAt, s.UpdatedAt,
	)
}

func (r *SalesQuotationRepo) Update(ctx context.Context, s *entity.SalesQuotation) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE sales_quotations SET customer_id = $2, currency_id = $3, valid_until = $4, total = $5,
			notes = $6, updated_at = $7
		WHERE id = $1`,
		s.ID, s.CustomerID, s.CurrencyID, s.ValidUntil, s.Total, s.Notes, s.UpdatedAt,
	)
	if err != nil {
		return classify("update sales quotation", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("id", "sales quotation %s not found", s.ID)
	}
	return nil
}

func (r *SalesQuotationRepo) GetByID(ctx context.Context, id string) (*entity.SalesQuotation, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var s entity.SalesQuotation
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, series_id, num_series, num_correlativo, full_number, customer_id,
			currency_id, document_date, valid_until, total, notes, created_at, updated_at
		FROM sales_quotations WHERE id = $1`, id).Scan(
		&s.ID, &s.CompanyID, &s.Numbering.SeriesID, &s.Numbering.NumSeries, &s.Numbering.NumCorrelativo,
		&s.Numbering.FullNumber, &s.CustomerID, &s.CurrencyID, &s.DocumentDate, &s.ValidUntil, &s.Total,
		&s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get sales quotation", err)
	}
	return &s, nil
}

// WorkOrderRepo órdenes de trabajo sobre PostgreSQL.
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

func (r *WorkOrderRepo) Create(ctx context.Context, w *entity.WorkOrder) error {
	return createDocument(ctx, r.q, "insert work order", `
		INSERT INTO work_orders (id, company_id, series_id, num_series, num_correlativo, full_number,
			vessel_id, responsible_id, document_date, due_date, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		w.Numbering,
		w.ID, w.CompanyID, w.Numbering.SeriesID, w.Numbering.NumSeries, w.Numbering.NumCorrelativo, w.Numbering.FullNumber,
		w.VesselID, w.ResponsibleID, w.DocumentDate, w.DueDate, w.Description, w.CreatedAt, w.UpdatedAt,
	)
}

func (r *WorkOrderRepo) Update(ctx context.Context, w *entity.WorkOrder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE work_orders SET responsible_id = $2, due_date = $3, description = $4, updated_at = $5
		WHERE id = $1`,
		w.ID, w.ResponsibleID, w.DueDate, w.Description, w.UpdatedAt,
	)
	if err != nil {
		return classify("update work order", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("id", "work order %s not found", w.ID)
	}
	return nil
}

func (r *WorkOrderRepo) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var w entity.WorkOrder
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, series_id, num_series, num_correlativo, full_number, vessel_id,
			responsible_id, document_date, due_date, description, created_at, updated_at
		FROM work_orders WHERE id = $1`, id).Scan(
		&w.ID, &w.CompanyID, &w.Numbering.SeriesID, &w.Numbering.NumSeries, &w.Numbering.NumCorrelativo,
		&w.Numbering.FullNumber, &w.VesselID, &w.ResponsibleID, &w.DocumentDate, &w.DueDate,
		&w.Description, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get work order", err)
	}
	return &w, nil
}
