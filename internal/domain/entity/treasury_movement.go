package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementState códigos del catálogo compartido de estados.
type MovementState int

const (
	MovementStatePending   MovementState = 20
	MovementStateValidated MovementState = 21
)

func (s MovementState) String() string {
	switch s {
	case MovementStatePending:
		return "PENDIENTE"
	case MovementStateValidated:
		return "VALIDADO"
	}
	return "DESCONOCIDO"
}

// TreasuryMovement asiento del libro de caja. Una vez VALIDADO solo cambian los metadatos de archivo.
type TreasuryMovement struct {
	ID                   string
	OriginAccountID      string
	DestinationAccountID *string // nil: movimiento dentro de la misma entidad
	OriginCompanyID      string
	DestinationCompanyID *string
	MovementTypeID       string
	CurrencyID           string
	Amount               decimal.Decimal
	State                MovementState
	Origin               Origin
	EntityID             *string
	ProductID            *string
	NoInvoice            bool
	DocumentURL          string
	ReceiptURL           string
	ArchivedAt           *time.Time
	ValidatedAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsPending indica si el movimiento admite enmiendas y validación.
func (m *TreasuryMovement) IsPending() bool { return m.State == MovementStatePending }

// Snapshot copia los campos que fluyen del movimiento hacia la liquidación al validar.
func (m *TreasuryMovement) Snapshot(at time.Time) MovementSnapshot {
	return MovementSnapshot{
		MovementID:  m.ID,
		EntityID:    m.EntityID,
		CurrencyID:  m.CurrencyID,
		NoInvoice:   m.NoInvoice,
		DocumentURL: m.DocumentURL,
		ReceiptURL:  m.ReceiptURL,
		ProductID:   m.ProductID,
		ValidatedAt: at,
	}
}

// MovementSnapshot vista inmutable del movimiento en el momento de validar.
type MovementSnapshot struct {
	MovementID  string
	EntityID    *string
	CurrencyID  string
	NoInvoice   bool
	DocumentURL string
	ReceiptURL  string
	ProductID   *string
	ValidatedAt time.Time
}
