package sequence

import (
	"strconv"
	"strings"

	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
)

// PadLeft rellena con ceros a la izquierda hasta width. Un valor más largo que width no se trunca.
func PadLeft(value string, width int) string {
	if width <= len(value) {
		return value
	}
	return strings.Repeat("0", width-len(value)) + value
}

// Format arma la numeración de un correlativo dentro de la serie: "{serie}-{correlativo}".
func Format(s *entity.DocumentSeries, correlativo int64) entity.Numbering {
	numSeries := PadLeft(strings.TrimSpace(s.Serie), s.LeftZerosSeries)
	numCorrelativo := PadLeft(strconv.FormatInt(correlativo, 10), s.LeftZerosCorrelativo)
	return entity.Numbering{
		SeriesID:       s.ID,
		NumSeries:      numSeries,
		NumCorrelativo: numCorrelativo,
		FullNumber:     numSeries + "-" + numCorrelativo,
	}
}

// Next avanza el contador de la serie y devuelve la numeración resultante. Debe llamarse
// sobre una fila leída con bloqueo y persistirse en la misma transacción.
func Next(s *entity.DocumentSeries) (entity.Numbering, error) {
	if !s.Active {
		return entity.Numbering{}, domain.Validation("series_id", "series %s is inactive", s.ID)
	}
	if s.Correlativo < 0 {
		return entity.Numbering{}, domain.Validation("series_id", "series %s has a negative counter", s.ID)
	}
	s.Correlativo++
	return Format(s, s.Correlativo), nil
}
