package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Numbering es la numeración asignada a un documento emitido. Se fija al emitir y no se
// recalcula nunca en actualizaciones.
type Numbering struct {
	SeriesID       string
	NumSeries      string // Serie con ceros a la izquierda
	NumCorrelativo string // Correlativo con ceros a la izquierda
	FullNumber     string // NumSeries + "-" + NumCorrelativo
}

// Contract contrato con una contraparte (armador, tripulante, proveedor de servicios).
type Contract struct {
	ID             string
	CompanyID      string
	Numbering      Numbering
	CounterpartyID string
	ResponsibleID  string
	VesselID       *string // Una embarcación solo puede tener un contrato activo
	DocumentDate   time.Time
	StartDate      time.Time
	EndDate        time.Time
	Amount         decimal.Decimal
	CurrencyID     string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SalesQuotation cotización de venta (exportación).
type SalesQuotation struct {
	ID           string
	CompanyID    string
	Numbering    Numbering
	CustomerID   string
	CurrencyID   string
	DocumentDate time.Time
	ValidUntil   time.Time
	Total        decimal.Decimal
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WorkOrder orden de trabajo de mantenimiento sobre una embarcación o equipo.
type WorkOrder struct {
	ID            string
	CompanyID     string
	Numbering     Numbering
	VesselID      string
	ResponsibleID string
	DocumentDate  time.Time
	DueDate       time.Time
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
