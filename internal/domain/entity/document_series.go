package entity

import "time"

// DocumentType identifica qué clase de documento numera una serie.
type DocumentType string

const (
	DocumentTypeContract       DocumentType = "CONTRACT"
	DocumentTypeSalesQuotation DocumentType = "SALES_QUOTATION"
	DocumentTypeWorkOrder      DocumentType = "WORK_ORDER"
	// DocumentTypePurchaseOrder solo existe para el CHECK del esquema y la configuración de series;
	// no hay emisor de órdenes de compra.
	DocumentTypePurchaseOrder DocumentType = "PURCHASE_ORDER"
)

// DocumentSeries es el contador compartido por (empresa, tipo de documento, serie).
// Correlativo nunca decrece; solo el asignador de secuencias lo modifica, dentro de la
// misma transacción que inserta el documento numerado.
type DocumentSeries struct {
	ID                   string
	CompanyID            string
	DocumentType         DocumentType
	Serie                string // Número de serie (ej: "7" → "007")
	Correlativo          int64  // Último correlativo asignado
	LeftZerosSeries      int    // Ancho de relleno de la serie
	LeftZerosCorrelativo int    // Ancho de relleno del correlativo
	Active               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
