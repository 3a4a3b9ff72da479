package entity

// MasterKind catálogos de datos maestros que este núcleo solo consulta por existencia.
type MasterKind string

const (
	MasterCompany      MasterKind = "company"
	MasterEntity       MasterKind = "entity" // contrapartes: clientes, proveedores, armadores
	MasterEmployee     MasterKind = "employee"
	MasterVessel       MasterKind = "vessel"
	MasterCurrency     MasterKind = "currency"
	MasterAccount      MasterKind = "account"
	MasterMovementType MasterKind = "movement_type"
	MasterProduct      MasterKind = "product"
)
