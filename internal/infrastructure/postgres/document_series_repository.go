package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

var _ repository.DocumentSeriesRepository = (*DocumentSeriesRepo)(nil)

// DocumentSeriesRepo series de numeración sobre PostgreSQL.
type DocumentSeriesRepo struct {
	q Querier
}

// NewDocumentSeriesRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentSeriesRepository(q Querier) *DocumentSeriesRepo {
	return &DocumentSeriesRepo{q: q}
}

const seriesColumns = `id, company_id, document_type, serie, correlativo, left_zeros_series,
	left_zeros_correlativo, active, created_at, updated_at`

func (r *DocumentSeriesRepo) GetByID(ctx context.Context, id string) (*entity.DocumentSeries, error) {
	return r.get(ctx, `SELECT `+seriesColumns+` FROM document_series WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la serie: dos emisiones concurrentes se serializan aquí.
func (r *DocumentSeriesRepo) GetForUpdate(ctx context.Context, id string) (*entity.DocumentSeries, error) {
	return r.get(ctx, `SELECT `+seriesColumns+` FROM document_series WHERE id = $1 FOR UPDATE`, id)
}

func (r *DocumentSeriesRepo) get(ctx context.Context, query, id string) (*entity.DocumentSeries, error) {
	var s entity.DocumentSeries
	var docType string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CompanyID, &docType, &s.Serie, &s.Correlativo, &s.LeftZerosSeries,
		&s.LeftZerosCorrelativo, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get document series", err)
	}
	s.DocumentType = entity.DocumentType(docType)
	return &s, nil
}

// UpdateCorrelativo solo avanza: si la fila ya tiene un valor igual o mayor no toca nada.
func (r *DocumentSeriesRepo) UpdateCorrelativo(ctx context.Context, id string, correlativo int64) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE document_series SET correlativo = $2, updated_at = now()
		WHERE id = $1 AND correlativo < $2`, id, correlativo)
	if err != nil {
		return classify("update series correlativo", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Conflict("series_id", "series %s counter is already at or beyond %d", id, correlativo)
	}
	return nil
}
