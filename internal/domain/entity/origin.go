package entity

import (
	"fmt"
	"strings"

	"github.com/jhoicas/pesquera-erp/internal/domain"
)

// OriginModule es el discriminante numérico persistido. Los códigos son estables:
// no se renumeran sin migración.
type OriginModule int

const (
	OriginFishingIndustrial  OriginModule = 2
	OriginFishingConsumption OriginModule = 3
	OriginProcurement        OriginModule = 4
	OriginSales              OriginModule = 5
	OriginMaintenance        OriginModule = 6
	OriginServiceContract    OriginModule = 7
)

// OriginModules lista todos los módulos conocidos; el reconciliador exige un handler por cada uno.
func OriginModules() []OriginModule {
	return []OriginModule{
		OriginFishingIndustrial,
		OriginFishingConsumption,
		OriginProcurement,
		OriginSales,
		OriginMaintenance,
		OriginServiceContract,
	}
}

func (m OriginModule) String() string {
	switch m {
	case OriginFishingIndustrial:
		return "fishing-industrial settlement"
	case OriginFishingConsumption:
		return "fishing-consumption settlement"
	case OriginProcurement:
		return "procurement settlement"
	case OriginSales:
		return "sales settlement"
	case OriginMaintenance:
		return "maintenance settlement"
	case OriginServiceContract:
		return "service-contract settlement"
	}
	return fmt.Sprintf("origin module %d", int(m))
}

// Origin referencia discriminada a la liquidación pendiente de un módulo. Es una unión
// cerrada: solo los tipos de este paquete la implementan.
type Origin interface {
	Module() OriginModule
	RecordID() string
	isOrigin()
}

type FishingIndustrialOrigin struct{ SettlementID string }
type FishingConsumptionOrigin struct{ SettlementID string }
type ProcurementOrigin struct{ SettlementID string }
type SalesOrigin struct{ SettlementID string }
type MaintenanceOrigin struct{ SettlementID string }
type ServiceContractOrigin struct{ SettlementID string }

func (o FishingIndustrialOrigin) Module() OriginModule  { return OriginFishingIndustrial }
func (o FishingConsumptionOrigin) Module() OriginModule { return OriginFishingConsumption }
func (o ProcurementOrigin) Module() OriginModule        { return OriginProcurement }
func (o SalesOrigin) Module() OriginModule              { return OriginSales }
func (o MaintenanceOrigin) Module() OriginModule        { return OriginMaintenance }
func (o ServiceContractOrigin) Module() OriginModule    { return OriginServiceContract }

func (o FishingIndustrialOrigin) RecordID() string  { return o.SettlementID }
func (o FishingConsumptionOrigin) RecordID() string { return o.SettlementID }
func (o ProcurementOrigin) RecordID() string        { return o.SettlementID }
func (o SalesOrigin) RecordID() string              { return o.SettlementID }
func (o MaintenanceOrigin) RecordID() string        { return o.SettlementID }
func (o ServiceContractOrigin) RecordID() string    { return o.SettlementID }

func (FishingIndustrialOrigin) isOrigin()  {}
func (FishingConsumptionOrigin) isOrigin() {}
func (ProcurementOrigin) isOrigin()        {}
func (SalesOrigin) isOrigin()              {}
func (MaintenanceOrigin) isOrigin()        {}
func (ServiceContractOrigin) isOrigin()    {}

// ParseOrigin convierte el par persistido (código, id) en una variante. Es el único punto
// donde un código desconocido puede aparecer.
func ParseOrigin(code int, recordID string) (Origin, error) {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return nil, domain.Validation("origin_record_id", "origin record id is required")
	}
	switch OriginModule(code) {
	case OriginFishingIndustrial:
		return FishingIndustrialOrigin{SettlementID: recordID}, nil
	case OriginFishingConsumption:
		return FishingConsumptionOrigin{SettlementID: recordID}, nil
	case OriginProcurement:
		return ProcurementOrigin{SettlementID: recordID}, nil
	case OriginSales:
		return SalesOrigin{SettlementID: recordID}, nil
	case OriginMaintenance:
		return MaintenanceOrigin{SettlementID: recordID}, nil
	case OriginServiceContract:
		return ServiceContractOrigin{SettlementID: recordID}, nil
	}
	return nil, domain.Validation("origin_module", "unsupported origin module: %d", code)
}
