package documents_test

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pesquera-erp/internal/application/documents"
	"github.com/jhoicas/pesquera-erp/internal/application/dto"
	"github.com/jhoicas/pesquera-erp/internal/application/masterdata"
	"github.com/jhoicas/pesquera-erp/internal/application/numbering"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/infrastructure/memory"
)

const (
	companyID     = "company-1"
	counterparty  = "entity-1"
	responsible   = "employee-1"
	vesselID      = "vessel-1"
	currencyID    = "PEN"
	contractSerie = "serie-contratos"
)

var defaults = documents.Defaults{ContractValidityDays: 365, QuotationValidityDays: 15, WorkOrderDueDays: 7}

type fixture struct {
	store      *memory.Store
	contracts  *documents.ContractUseCase
	quotations *documents.SalesQuotationUseCase
	workOrders *documents.WorkOrderUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	store.AddMaster(entity.MasterCompany, companyID)
	store.AddMaster(entity.MasterEntity, counterparty)
	store.AddMaster(entity.MasterEmployee, responsible)
	store.AddMaster(entity.MasterVessel, vesselID, "vessel-2")
	store.AddMaster(entity.MasterCurrency, currencyID)
	store.AddSeries(entity.DocumentSeries{
		ID: contractSerie, CompanyID: companyID, DocumentType: entity.DocumentTypeContract,
		Serie: "7", Correlativo: 10, LeftZerosSeries: 3, LeftZerosCorrelativo: 6, Active: true,
	})
	store.AddSeries(entity.DocumentSeries{
		ID: "serie-cotizaciones", CompanyID: companyID, DocumentType: entity.DocumentTypeSalesQuotation,
		Serie: "1", LeftZerosSeries: 3, LeftZerosCorrelativo: 6, Active: true,
	})
	store.AddSeries(entity.DocumentSeries{
		ID: "serie-ot", CompanyID: companyID, DocumentType: entity.DocumentTypeWorkOrder,
		Serie: "2", LeftZerosSeries: 3, LeftZerosCorrelativo: 6, Active: true,
	})

	repos := store.Repos()
	refs := masterdata.NewChecker(repos.MasterData())
	issuer := documents.NewIssuer(store, refs, numbering.NewAllocator(zerolog.Nop()), zerolog.Nop())
	return &fixture{
		store:      store,
		contracts:  documents.NewContractUseCase(issuer, store, repos.Contracts(), refs, defaults),
		quotations: documents.NewSalesQuotationUseCase(issuer, store, repos.SalesQuotations(), refs, defaults),
		workOrders: documents.NewWorkOrderUseCase(issuer, store, repos.WorkOrders(), refs, defaults),
	}
}

func contractRequest() dto.CreateContractRequest {
	return dto.CreateContractRequest{
		SeriesID:       contractSerie,
		CounterpartyID: counterparty,
		ResponsibleID:  responsible,
		Amount:         decimal.NewFromInt(1500),
		CurrencyID:     currencyID,
	}
}

func strPtr(s string) *string { return &s }
