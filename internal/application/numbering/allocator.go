package numbering

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
	"github.com/jhoicas/pesquera-erp/internal/domain/sequence"
)

// Request identifica la serie elegida por el usuario y lo que se espera de ella.
type Request struct {
	SeriesID     string
	CompanyID    string
	DocumentType entity.DocumentType
}

// Allocator asigna el siguiente número de una serie. No abre transacciones: recibe el
// repositorio de series atado a la transacción del caller, de modo que el incremento y el
// insert del documento se confirman o se revierten juntos.
type Allocator struct {
	log zerolog.Logger
}

// NewAllocator construye el asignador.
func NewAllocator(log zerolog.Logger) *Allocator {
	return &Allocator{log: log.With().Str("component", "numbering").Logger()}
}

// Allocate bloquea la fila de la serie, avanza el correlativo y lo persiste.
func (a *Allocator) Allocate(ctx context.Context, series repository.DocumentSeriesRepository, req Request) (entity.Numbering, error) {
	seriesID := strings.TrimSpace(req.SeriesID)
	if seriesID == "" {
		return entity.Numbering{}, domain.Validation("series_id", "a document series must be selected")
	}
	s, err := series.GetForUpdate(ctx, seriesID)
	if err != nil {
		return entity.Numbering{}, err
	}
	if s == nil {
		return entity.Numbering{}, domain.Validation("series_id", "series %s not found", seriesID)
	}
	if req.CompanyID != "" && s.CompanyID != req.CompanyID {
		return entity.Numbering{}, domain.Validation("series_id", "series %s does not belong to company %s", seriesID, req.CompanyID)
	}
	if req.DocumentType != "" && s.DocumentType != req.DocumentType {
		return entity.Numbering{}, domain.Validation("series_id", "series %s numbers %s documents, not %s", seriesID, s.DocumentType, req.DocumentType)
	}

	n, err := sequence.Next(s)
	if err != nil {
		return entity.Numbering{}, err
	}
	if err := series.UpdateCorrelativo(ctx, s.ID, s.Correlativo); err != nil {
		return entity.Numbering{}, err
	}
	a.log.Debug().
		Str("series_id", s.ID).
		Int64("correlativo", s.Correlativo).
		Str("full_number", n.FullNumber).
		Msg("correlativo asignado")
	return n, nil
}
