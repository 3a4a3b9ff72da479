package documents

import (
	"strings"
	"time"

	"github.com/jhoicas/pesquera-erp/internal/application/dto"
	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
)

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseDate interpreta un campo de fecha opcional (YYYY-MM-DD). Devuelve nil si viene vacío.
func parseDate(field string, v *string) (*time.Time, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(*v))
	if err != nil {
		return nil, domain.Validation(field, "%s must have the format YYYY-MM-DD", field)
	}
	return &t, nil
}

func dateOr(v *time.Time, def time.Time) time.Time {
	if v != nil {
		return *v
	}
	return def
}

func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

func formatDate(t time.Time) string {
	return t.Format(dto.DateLayout)
}

func toNumberingResponse(n entity.Numbering) dto.NumberingResponse {
	return dto.NumberingResponse{
		SeriesID:       n.SeriesID,
		NumSeries:      n.NumSeries,
		NumCorrelativo: n.NumCorrelativo,
		FullNumber:     n.FullNumber,
	}
}
