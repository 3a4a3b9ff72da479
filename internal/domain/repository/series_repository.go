package repository

import (
	"context"

	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
)

// DocumentSeriesRepository define el puerto de persistencia para las series de numeración.
type DocumentSeriesRepository interface {
	GetByID(ctx context.Context, id string) (*entity.DocumentSeries, error)

	// GetForUpdate lee la serie bloqueando la fila hasta el fin de la transacción.
	// Devuelve nil, nil si no existe. Solo tiene sentido dentro de TxRunner.Run.
	GetForUpdate(ctx context.Context, id string) (*entity.DocumentSeries, error)

	// UpdateCorrelativo persiste el nuevo contador. Nunca debe recibir un valor menor al actual.
	UpdateCorrelativo(ctx context.Context, id string, correlativo int64) error
}
