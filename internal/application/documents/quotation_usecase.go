package documents

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pesquera-erp/internal/application/dto"
	"github.com/jhoicas/pesquera-erp/internal/application/masterdata"
	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

// SalesQuotationUseCase emisión y mantenimiento de cotizaciones de venta.
type SalesQuotationUseCase struct {
	issuer   *Issuer
	txRunner TxRunner
	repo     repository.SalesQuotationRepository
	refs     *masterdata.Checker
	defaults Defaults
	now      func() time.Time
}

// NewSalesQuotationUseCase construye el caso de uso.
func NewSalesQuotationUseCase(issuer *Issuer, txRunner TxRunner, repo repository.SalesQuotationRepository, refs *masterdata.Checker, defaults Defaults) *SalesQuotationUseCase {
	return &SalesQuotationUseCase{
		issuer:   issuer,
		txRunner: txRunner,
		repo:     repo,
		refs:     refs,
		defaults: defaults,
		now:      time.Now,
	}
}

// Create emite una cotización. Sin valid_until, vence QuotationValidityDays después de la fecha del documento.
func (uc *SalesQuotationUseCase) Create(ctx context.Context, companyID string, in dto.CreateSalesQuotationRequest) (*dto.SalesQuotationResponse, error) {
	docDate, err := parseDate("document_date", in.DocumentDate)
	if err != nil {
		return nil, err
	}
	validUntil, err := parseDate("valid_until", in.ValidUntil)
	if err != nil {
		return nil, err
	}
	if in.Total.LessThan(decimal.Zero) {
		return nil, domain.Validation("total", "total cannot be negative")
	}

	now := uc.now()
	q := &entity.SalesQuotation{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		CustomerID:   in.CustomerID,
		CurrencyID:   in.CurrencyID,
		DocumentDate: dateOr(docDate, dateOnly(now)),
		Total:        in.Total,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	q.ValidUntil = dateOr(validUntil, addDays(q.DocumentDate, uc.defaults.QuotationValidityDays))
	if q.ValidUntil.Before(q.DocumentDate) {
		return nil, domain.Validation("valid_until", "valid_until cannot be before document_date")
	}

	n, err := uc.issuer.Issue(ctx, IssueRequest{
		CompanyID:    companyID,
		SeriesID:     in.SeriesID,
		DocumentType: entity.DocumentTypeSalesQuotation,
		References: []masterdata.Reference{
			masterdata.Required("company_id", entity.MasterCompany, companyID),
			masterdata.Required("customer_id", entity.MasterEntity, in.CustomerID),
			masterdata.Required("currency_id", entity.MasterCurrency, in.CurrencyID),
		},
		Persist: func(ctx context.Context, uow repository.UnitOfWork, n entity.Numbering) error {
			q.Numbering = n
			return uow.SalesQuotations().Create(ctx, q)
		},
	})
	if err != nil {
		return nil, err
	}
	q.Numbering = n
	return toSalesQuotationResponse(q), nil
}

// Update modifica los campos editables sin tocar la numeración.
func (uc *SalesQuotationUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateSalesQuotationRequest) (*dto.SalesQuotationResponse, error) {
	validUntil, err := parseDate("valid_until", in.ValidUntil)
	if err != nil {
		return nil, err
	}
	if in.Total != nil && in.Total.LessThan(decimal.Zero) {
		return nil, domain.Validation("total", "total cannot be negative")
	}
	var refs []masterdata.Reference
	if in.CustomerID != nil {
		refs = append(refs, masterdata.Required("customer_id", entity.MasterEntity, *in.CustomerID))
	}
	if in.CurrencyID != nil {
		refs = append(refs, masterdata.Required("currency_id", entity.MasterCurrency, *in.CurrencyID))
	}
	if err := uc.refs.Check(ctx, refs...); err != nil {
		return nil, err
	}

	var q *entity.SalesQuotation
	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		q, err = uow.SalesQuotations().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if q == nil || q.CompanyID != companyID {
			return domain.NotFound("id", "sales quotation %s not found", id)
		}
		if in.CustomerID != nil {
			q.CustomerID = *in.CustomerID
		}
		if in.CurrencyID != nil {
			q.CurrencyID = *in.CurrencyID
		}
		if validUntil != nil {
			if validUntil.Before(q.DocumentDate) {
				return domain.Validation("valid_until", "valid_until cannot be before document_date")
			}
			q.ValidUntil = *validUntil
		}
		if in.Total != nil {
			q.Total = *in.Total
		}
		if in.Notes != nil {
			q.Notes = *in.Notes
		}
		q.UpdatedAt = uc.now()
		return uow.SalesQuotations().Update(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return toSalesQuotationResponse(q), nil
}

// Get obtiene una cotización de la empresa.
func (uc *SalesQuotationUseCase) Get(ctx context.Context, companyID, id string) (*dto.SalesQuotationResponse, error) {
	q, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil || q.CompanyID != companyID {
		return nil, domain.NotFound("id", "sales quotation %s not found", id)
	}
	return toSalesQuotationResponse(q), nil
}

func toSalesQuotationResponse(q *entity.SalesQuotation) *dto.SalesQuotationResponse {
	return &dto.SalesQuotationResponse{
		ID:           q.ID,
		CompanyID:    q.CompanyID,
		Numbering:    toNumberingResponse(q.Numbering),
		CustomerID:   q.CustomerID,
		CurrencyID:   q.CurrencyID,
		DocumentDate: formatDate(q.DocumentDate),
		ValidUntil:   formatDate(q.ValidUntil),
		Total:        q.Total,
		Notes:        q.Notes,
	}
}
