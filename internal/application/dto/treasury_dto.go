package dto

import "github.com/shopspring/decimal"

// CreateTreasuryMovementRequest body para registrar un movimiento de caja desde un módulo.
type CreateTreasuryMovementRequest struct {
	OriginAccountID      string          `json:"origin_account_id"`
	DestinationAccountID *string         `json:"destination_account_id,omitempty"`
	OriginCompanyID      string          `json:"origin_company_id"`
	DestinationCompanyID *string         `json:"destination_company_id,omitempty"`
	MovementTypeID       string          `json:"movement_type_id"`
	CurrencyID           string          `json:"currency_id"`
	Amount               decimal.Decimal `json:"amount"`
	OriginModule         int             `json:"origin_module"`
	OriginRecordID       string          `json:"origin_record_id"`
	EntityID             *string         `json:"entity_id,omitempty"`
	ProductID            *string         `json:"product_id,omitempty"`
	NoInvoice            bool            `json:"no_invoice"`
	DocumentURL          string          `json:"document_url"`
	ReceiptURL           string          `json:"receipt_url"`
}

// UpdateTreasuryMovementRequest enmienda de un movimiento PENDIENTE. El origen no se puede cambiar.
type UpdateTreasuryMovementRequest struct {
	OriginAccountID      *string          `json:"origin_account_id,omitempty"`
	DestinationAccountID *string          `json:"destination_account_id,omitempty"`
	DestinationCompanyID *string          `json:"destination_company_id,omitempty"`
	MovementTypeID       *string          `json:"movement_type_id,omitempty"`
	CurrencyID           *string          `json:"currency_id,omitempty"`
	Amount               *decimal.Decimal `json:"amount,omitempty"`
	EntityID             *string          `json:"entity_id,omitempty"`
	ProductID            *string          `json:"product_id,omitempty"`
	NoInvoice            *bool            `json:"no_invoice,omitempty"`
	DocumentURL          *string          `json:"document_url,omitempty"`
	ReceiptURL           *string          `json:"receipt_url,omitempty"`
}

// TreasuryMovementResponse movimiento de tesorería.
type TreasuryMovementResponse struct {
	ID                   string          `json:"id"`
	OriginAccountID      string          `json:"origin_account_id"`
	DestinationAccountID *string         `json:"destination_account_id,omitempty"`
	OriginCompanyID      string          `json:"origin_company_id"`
	DestinationCompanyID *string         `json:"destination_company_id,omitempty"`
	MovementTypeID       string          `json:"movement_type_id"`
	CurrencyID           string          `json:"currency_id"`
	Amount               decimal.Decimal `json:"amount"`
	StateID              int             `json:"state_id"`
	State                string          `json:"state"`
	OriginModule         int             `json:"origin_module"`
	OriginRecordID       string          `json:"origin_record_id"`
	EntityID             *string         `json:"entity_id,omitempty"`
	ProductID            *string         `json:"product_id,omitempty"`
	NoInvoice            bool            `json:"no_invoice"`
	DocumentURL          string          `json:"document_url,omitempty"`
	ReceiptURL           string          `json:"receipt_url,omitempty"`
	ArchivedAt           *string         `json:"archived_at,omitempty"`
	ValidatedAt          *string         `json:"validated_at,omitempty"`
}
