package repository

// UnitOfWork agrupa los repositorios atados a una misma transacción.
type UnitOfWork interface {
	Series() DocumentSeriesRepository
	Contracts() ContractRepository
	SalesQuotations() SalesQuotationRepository
	WorkOrders() WorkOrderRepository
	Movements() TreasuryMovementRepository
	Settlements() SettlementRepository
	MasterData() MasterDataRepository
}
