package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TreasurySync bloque común de las liquidaciones pendientes: estado de validación en tesorería
// y copias desnormalizadas del movimiento. Durante la validación el flujo es siempre
// movimiento → liquidación.
type TreasurySync struct {
	TreasuryValidated      bool
	TreasuryValidationDate *time.Time
	TreasuryMovementID     *string
	EntityID               *string
	CurrencyID             *string
	NoInvoice              bool
	DocumentURL            string
	ReceiptURL             string
}

// Apply copia los campos del snapshot al bloque de sincronización. Los campos opcionales
// (entidad, documento, comprobante) se copian solo si el movimiento los trae: uno ausente no
// borra el valor que ya tenía la liquidación. Moneda y marca sin factura se copian siempre.
func (s *TreasurySync) Apply(snap MovementSnapshot) {
	at := snap.ValidatedAt
	movementID := snap.MovementID
	currencyID := snap.CurrencyID
	s.TreasuryValidated = true
	s.TreasuryValidationDate = &at
	s.TreasuryMovementID = &movementID
	if snap.EntityID != nil {
		entityID := *snap.EntityID
		s.EntityID = &entityID
	}
	s.CurrencyID = &currencyID
	s.NoInvoice = snap.NoInvoice
	if snap.DocumentURL != "" {
		s.DocumentURL = snap.DocumentURL
	}
	if snap.ReceiptURL != "" {
		s.ReceiptURL = snap.ReceiptURL
	}
}

// FishingIndustrialSettlement línea de liquidación de faena de pesca industrial (harina/aceite).
type FishingIndustrialSettlement struct {
	ID        string
	TripID    string
	ProductID *string
	Amount    decimal.Decimal
	Sync      TreasurySync
}

// FishingConsumptionSettlement línea de liquidación de pesca para consumo humano.
type FishingConsumptionSettlement struct {
	ID     string
	TripID string
	Amount decimal.Decimal
	Sync   TreasurySync
}

// ProcurementSettlement línea de liquidación de una orden de compra.
type ProcurementSettlement struct {
	ID              string
	PurchaseOrderID string
	Amount          decimal.Decimal
	Sync            TreasurySync
}

// SalesSettlement línea de liquidación de una venta.
type SalesSettlement struct {
	ID           string
	SalesOrderID string
	Amount       decimal.Decimal
	Sync         TreasurySync
}

// MaintenanceSettlement línea de liquidación de una orden de trabajo de mantenimiento.
type MaintenanceSettlement struct {
	ID          string
	WorkOrderID string
	Amount      decimal.Decimal
	Sync        TreasurySync
}

// ServiceContractSettlement línea de liquidación de un contrato de servicios.
type ServiceContractSettlement struct {
	ID         string
	ContractID string
	Amount     decimal.Decimal
	Sync       TreasurySync
}
