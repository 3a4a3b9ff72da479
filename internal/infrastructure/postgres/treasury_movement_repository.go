package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

var _ repository.TreasuryMovementRepository = (*TreasuryMovementRepo)(nil)

// TreasuryMovementRepo libro de caja sobre PostgreSQL.
type TreasuryMovementRepo struct {
	q Querier
}

// NewTreasuryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTreasuryMovementRepository(q Querier) *TreasuryMovementRepo {
	return &TreasuryMovementRepo{q: q}
}

const movementColumns = `id, origin_account_id, destination_account_id, origin_company_id, destination_company_id,
	movement_type_id, currency_id, amount, state_id, origin_module, origin_record_id, entity_id, product_id,
	no_invoice, document_url, receipt_url, archived_at, validated_at, created_at, updated_at`

func (r *TreasuryMovementRepo) Create(ctx context.Context, m *entity.TreasuryMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO treasury_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		m.ID, m.OriginAccountID, m.DestinationAccountID, m.OriginCompanyID, m.DestinationCompanyID,
		m.MovementTypeID, m.CurrencyID, m.Amount, int(m.State), int(m.Origin.Module()), m.Origin.RecordID(),
		m.EntityID, m.ProductID, m.NoInvoice, m.DocumentURL, m.ReceiptURL, m.ArchivedAt, m.ValidatedAt,
		m.CreatedAt, m.UpdatedAt,
	)
	return classify("insert treasury movement", err)
}

// Update reescribe estado y campos editables. El origen nunca cambia.
func (r *TreasuryMovementRepo) Update(ctx context.Context, m *entity.TreasuryMovement) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE treasury_movements SET origin_account_id = $2, destination_account_id = $3,
			destination_company_id = $4, movement_type_id = $5, currency_id = $6, amount = $7,
			state_id = $8, entity_id = $9, product_id = $10, no_invoice = $11, document_url = $12,
			receipt_url = $13, archived_at = $14, validated_at = $15, updated_at = $16
		WHERE id = $1`,
		m.ID, m.OriginAccountID, m.DestinationAccountID, m.DestinationCompanyID, m.MovementTypeID,
		m.CurrencyID, m.Amount, int(m.State), m.EntityID, m.ProductID, m.NoInvoice, m.DocumentURL,
		m.ReceiptURL, m.ArchivedAt, m.ValidatedAt, m.UpdatedAt,
	)
	if err != nil {
		return classify("update treasury movement", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("id", "treasury movement %s not found", m.ID)
	}
	return nil
}

func (r *TreasuryMovementRepo) GetByID(ctx context.Context, id string) (*entity.TreasuryMovement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM treasury_movements WHERE id = $1`, id)
}

func (r *TreasuryMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.TreasuryMovement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM treasury_movements WHERE id = $1 FOR UPDATE`, id)
}

func (r *TreasuryMovementRepo) get(ctx context.Context, query, id string) (*entity.TreasuryMovement, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var (
		m              entity.TreasuryMovement
		state, module  int
		originRecordID string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.OriginAccountID, &m.DestinationAccountID, &m.OriginCompanyID, &m.DestinationCompanyID,
		&m.MovementTypeID, &m.CurrencyID, &m.Amount, &state, &module, &originRecordID, &m.EntityID,
		&m.ProductID, &m.NoInvoice, &m.DocumentURL, &m.ReceiptURL, &m.ArchivedAt, &m.ValidatedAt,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get treasury movement", err)
	}
	m.State = entity.MovementState(state)
	// Un código de módulo desconocido en la fila aflora como error de validación.
	m.Origin, err = entity.ParseOrigin(module, originRecordID)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Delete solo borra movimientos PENDIENTES.
func (r *TreasuryMovementRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM treasury_movements WHERE id = $1 AND state_id = $2`,
		id, int(entity.MovementStatePending))
	if err != nil {
		return false, classify("delete treasury movement", err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateArchivedReceipt: 0 filas significa que el comprobante cambió mientras se archivaba
// (o el movimiento se borró); la copia queda huérfana y no se registra.
func (r *TreasuryMovementRepo) UpdateArchivedReceipt(ctx context.Context, id, sourceURL, archivedURL string, archivedAt time.Time) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE treasury_movements SET receipt_url = $2, archived_at = $3
		WHERE id = $1 AND receipt_url = $4`,
		id, archivedURL, archivedAt, sourceURL)
	if err != nil {
		return false, classify("update archived receipt", err)
	}
	return tag.RowsAffected() == 1, nil
}
