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

// ContractUseCase emisión y mantenimiento de contratos.
type ContractUseCase struct {
	issuer   *Issuer
	txRunner TxRunner
	repo     repository.ContractRepository
	refs     *masterdata.Checker
	defaults Defaults
	now      func() time.Time
}

// NewContractUseCase construye el caso de uso.
func NewContractUseCase(issuer *Issuer, txRunner TxRunner, repo repository.ContractRepository, refs *masterdata.Checker, defaults Defaults) *ContractUseCase {
	return &ContractUseCase{
		issuer:   issuer,
		txRunner: txRunner,
		repo:     repo,
		refs:     refs,
		defaults: defaults,
		now:      time.Now,
	}
}

// Create emite un contrato: asigna número de la serie elegida y lo persiste en la misma transacción.
// Sin fecha de fin, la vigencia por defecto arranca en la fecha de inicio (o del documento).
func (uc *ContractUseCase) Create(ctx context.Context, companyID string, in dto.CreateContractRequest) (*dto.ContractResponse, error) {
	docDate, err := parseDate("document_date", in.DocumentDate)
	if err != nil {
		return nil, err
	}
	startDate, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate("end_date", in.EndDate)
	if err != nil {
		return nil, err
	}
	if in.Amount.LessThan(decimal.Zero) {
		return nil, domain.Validation("amount", "amount cannot be negative")
	}

	now := uc.now()
	c := &entity.Contract{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		CounterpartyID: in.CounterpartyID,
		ResponsibleID:  in.ResponsibleID,
		VesselID:       in.VesselID,
		DocumentDate:   dateOr(docDate, dateOnly(now)),
		Amount:         in.Amount,
		CurrencyID:     in.CurrencyID,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	c.StartDate = dateOr(startDate, c.DocumentDate)
	c.EndDate = dateOr(endDate, addDays(c.StartDate, uc.defaults.ContractValidityDays))
	if c.EndDate.Before(c.StartDate) {
		return nil, domain.Validation("end_date", "end_date cannot be before start_date")
	}

	n, err := uc.issuer.Issue(ctx, IssueRequest{
		CompanyID:    companyID,
		SeriesID:     in.SeriesID,
		DocumentType: entity.DocumentTypeContract,
		References: []masterdata.Reference{
			masterdata.Required("company_id", entity.MasterCompany, companyID),
			masterdata.Required("counterparty_id", entity.MasterEntity, in.CounterpartyID),
			masterdata.Required("responsible_id", entity.MasterEmployee, in.ResponsibleID),
			masterdata.Optional("vessel_id", entity.MasterVessel, in.VesselID),
			masterdata.Required("currency_id", entity.MasterCurrency, in.CurrencyID),
		},
		Persist: func(ctx context.Context, uow repository.UnitOfWork, n entity.Numbering) error {
			if err := ensureVesselFree(ctx, uow.Contracts(), c.VesselID, ""); err != nil {
				return err
			}
			c.Numbering = n
			return uow.Contracts().Create(ctx, c)
		},
	})
	if err != nil {
		return nil, err
	}
	c.Numbering = n
	return toContractResponse(c), nil
}

// Update modifica los campos editables. La numeración nunca se recalcula.
func (uc *ContractUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateContractRequest) (*dto.ContractResponse, error) {
	startDate, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate("end_date", in.EndDate)
	if err != nil {
		return nil, err
	}
	if in.Amount != nil && in.Amount.LessThan(decimal.Zero) {
		return nil, domain.Validation("amount", "amount cannot be negative")
	}
	var refs []masterdata.Reference
	if in.CounterpartyID != nil {
		refs = append(refs, masterdata.Required("counterparty_id", entity.MasterEntity, *in.CounterpartyID))
	}
	if in.ResponsibleID != nil {
		refs = append(refs, masterdata.Required("responsible_id", entity.MasterEmployee, *in.ResponsibleID))
	}
	if in.CurrencyID != nil {
		refs = append(refs, masterdata.Required("currency_id", entity.MasterCurrency, *in.CurrencyID))
	}
	refs = append(refs, masterdata.Optional("vessel_id", entity.MasterVessel, in.VesselID))
	if err := uc.refs.Check(ctx, refs...); err != nil {
		return nil, err
	}

	var c *entity.Contract
	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		c, err = uow.Contracts().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil || c.CompanyID != companyID {
			return domain.NotFound("id", "contract %s not found", id)
		}
		if in.CounterpartyID != nil {
			c.CounterpartyID = *in.CounterpartyID
		}
		if in.ResponsibleID != nil {
			c.ResponsibleID = *in.ResponsibleID
		}
		if in.VesselID != nil {
			c.VesselID = in.VesselID
		}
		if startDate != nil {
			c.StartDate = *startDate
		}
		if endDate != nil {
			c.EndDate = *endDate
		}
		if in.Amount != nil {
			c.Amount = *in.Amount
		}
		if in.CurrencyID != nil {
			c.CurrencyID = *in.CurrencyID
		}
		if in.Notes != nil {
			c.Notes = *in.Notes
		}
		if c.EndDate.Before(c.StartDate) {
			return domain.Validation("end_date", "end_date cannot be before start_date")
		}
		if err := ensureVesselFree(ctx, uow.Contracts(), c.VesselID, c.ID); err != nil {
			return err
		}
		c.UpdatedAt = uc.now()
		return uow.Contracts().Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return toContractResponse(c), nil
}

// Get obtiene un contrato de la empresa.
func (uc *ContractUseCase) Get(ctx context.Context, companyID, id string) (*dto.ContractResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.CompanyID != companyID {
		return nil, domain.NotFound("id", "contract %s not found", id)
	}
	return toContractResponse(c), nil
}

// ensureVesselFree: una embarcación admite un único contrato vigente.
func ensureVesselFree(ctx context.Context, repo repository.ContractRepository, vesselID *string, excludeID string) error {
	if vesselID == nil || *vesselID == "" {
		return nil
	}
	taken, err := repo.ExistsActiveForVessel(ctx, *vesselID, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.Conflict("vessel_id", "vessel %s already has an active contract", *vesselID)
	}
	return nil
}

func toContractResponse(c *entity.Contract) *dto.ContractResponse {
	return &dto.ContractResponse{
		ID:             c.ID,
		CompanyID:      c.CompanyID,
		Numbering:      toNumberingResponse(c.Numbering),
		CounterpartyID: c.CounterpartyID,
		ResponsibleID:  c.ResponsibleID,
		VesselID:       c.VesselID,
		DocumentDate:   formatDate(c.DocumentDate),
		StartDate:      formatDate(c.StartDate),
		EndDate:        formatDate(c.EndDate),
		Amount:         c.Amount,
		CurrencyID:     c.CurrencyID,
		Notes:          c.Notes,
	}
}
