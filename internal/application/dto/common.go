package dto

// ErrorResponse cuerpo de error HTTP. Code discrimina el tipo de error (VALIDATION, CONFLICT,
// NOT_FOUND, INTERNAL); Field nombra el campo o registro ofensor cuando aplica.
type ErrorResponse struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NumberingResponse numeración asignada a un documento.
type NumberingResponse struct {
	SeriesID       string `json:"series_id"`
	NumSeries      string `json:"num_series"`
	NumCorrelativo string `json:"num_correlativo"`
	FullNumber     string `json:"full_number"`
}

// DateLayout formato de fechas en requests y responses.
const DateLayout = "2006-01-02"
