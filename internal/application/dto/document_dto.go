package dto

import "github.com/shopspring/decimal"

// Los requests de creación no llevan campos de numeración: el número lo asigna la serie.
// Si el cliente los envía, el parser los descarta.

// CreateContractRequest body para emitir un contrato.
type CreateContractRequest struct {
	SeriesID       string          `json:"series_id"`
	CounterpartyID string          `json:"counterparty_id"`
	ResponsibleID  string          `json:"responsible_id"`
	VesselID       *string         `json:"vessel_id,omitempty"`
	DocumentDate   *string         `json:"document_date,omitempty"`
	StartDate      *string         `json:"start_date,omitempty"`
	EndDate        *string         `json:"end_date,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	CurrencyID     string          `json:"currency_id"`
	Notes          string          `json:"notes"`
}

// UpdateContractRequest campos editables de un contrato.
type UpdateContractRequest struct {
	CounterpartyID *string          `json:"counterparty_id,omitempty"`
	ResponsibleID  *string          `json:"responsible_id,omitempty"`
	VesselID       *string          `json:"vessel_id,omitempty"`
	StartDate      *string          `json:"start_date,omitempty"`
	EndDate        *string          `json:"end_date,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	CurrencyID     *string          `json:"currency_id,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
}

// ContractResponse contrato emitido.
type ContractResponse struct {
	ID             string            `json:"id"`
	CompanyID      string            `json:"company_id"`
	Numbering      NumberingResponse `json:"numbering"`
	CounterpartyID string            `json:"counterparty_id"`
	ResponsibleID  string            `json:"responsible_id"`
	VesselID       *string           `json:"vessel_id,omitempty"`
	DocumentDate   string            `json:"document_date"`
	StartDate      string            `json:"start_date"`
	EndDate        string            `json:"end_date"`
	Amount         decimal.Decimal   `json:"amount"`
	CurrencyID     string            `json:"currency_id"`
	Notes          string            `json:"notes"`
}

// CreateSalesQuotationRequest body para emitir una cotización.
type CreateSalesQuotationRequest struct {
	SeriesID     string          `json:"series_id"`
	CustomerID   string          `json:"customer_id"`
	CurrencyID   string          `json:"currency_id"`
	DocumentDate *string         `json:"document_date,omitempty"`
	ValidUntil   *string         `json:"valid_until,omitempty"`
	Total        decimal.Decimal `json:"total"`
	Notes        string          `json:"notes"`
}

// UpdateSalesQuotationRequest campos editables de una cotización.
type UpdateSalesQuotationRequest struct {
	CustomerID *string          `json:"customer_id,omitempty"`
	CurrencyID *string          `json:"currency_id,omitempty"`
	ValidUntil *string          `json:"valid_until,omitempty"`
	Total      *decimal.Decimal `json:"total,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
}

// SalesQuotationResponse cotización emitida.
type SalesQuotationResponse struct {
	ID           string            `json:"id"`
	CompanyID    string            `json:"company_id"`
	Numbering    NumberingResponse `json:"numbering"`
	CustomerID   string            `json:"customer_id"`
	CurrencyID   string            `json:"currency_id"`
	DocumentDate string            `json:"document_date"`
	ValidUntil   string            `json:"valid_until"`
	Total        decimal.Decimal   `json:"total"`
	Notes        string            `json:"notes"`
}

// CreateWorkOrderRequest body para emitir una orden de trabajo.
type CreateWorkOrderRequest struct {
	SeriesID      string  `json:"series_id"`
	VesselID      string  `json:"vessel_id"`
	ResponsibleID string  `json:"responsible_id"`
	DocumentDate  *string `json:"document_date,omitempty"`
	DueDate       *string `json:"due_date,omitempty"`
	Description   string  `json:"description"`
}

// UpdateWorkOrderRequest campos editables de una orden de trabajo.
type UpdateWorkOrderRequest struct {
	ResponsibleID *string `json:"responsible_id,omitempty"`
	DueDate       *string `json:"due_date,omitempty"`
	Description   *string `json:"description,omitempty"`
}

// WorkOrderResponse orden de trabajo emitida.
type WorkOrderResponse struct {
	ID            string            `json:"id"`
	CompanyID     string            `json:"company_id"`
	Numbering     NumberingResponse `json:"numbering"`
	VesselID      string            `json:"vessel_id"`
	ResponsibleID string            `json:"responsible_id"`
	DocumentDate  string            `json:"document_date"`
	DueDate       string            `json:"due_date"`
	Description   string            `json:"description"`
}
