package documents

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pesquera-erp/internal/application/dto"
	"github.com/jhoicas/pesquera-erp/internal/application/masterdata"
	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

// WorkOrderUseCase emisión y mantenimiento de órdenes de trabajo.
type WorkOrderUseCase struct {
	issuer   *Issuer
	txRunner TxRunner
	repo     repository.WorkOrderRepository
	refs     *masterdata.Checker
	defaults Defaults
	now      func() time.Time
}

// NewWorkOrderUseCase construye el caso de uso.
func NewWorkOrderUseCase(issuer *Issuer, txRunner TxRunner, repo repository.WorkOrderRepository, refs *masterdata.Checker, defaults Defaults) *WorkOrderUseCase {
	return &WorkOrderUseCase{
		issuer:   issuer,
		txRunner: txRunner,
		repo:     repo,
		refs:     refs,
		defaults: defaults,
		now:      time.Now,
	}
}

// Create emite una orden de trabajo.
func (uc *WorkOrderUseCase) Create(ctx context.Context, companyID string, in dto.CreateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	docDate, err := parseDate("document_date", in.DocumentDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate("due_date", in.DueDate)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, domain.Validation("description", "description is required")
	}

	now := uc.now()
	w := &entity.WorkOrder{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		VesselID:      in.VesselID,
		ResponsibleID: in.ResponsibleID,
		DocumentDate:  dateOr(docDate, dateOnly(now)),
		Description:   in.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	w.DueDate = dateOr(dueDate, addDays(w.DocumentDate, uc.defaults.WorkOrderDueDays))
	if w.DueDate.Before(w.DocumentDate) {
		return nil, domain.Validation("due_date", "due_date cannot be before document_date")
	}

	n, err := uc.issuer.Issue(ctx, IssueRequest{
		CompanyID:    companyID,
		SeriesID:     in.SeriesID,
		DocumentType: entity.DocumentTypeWorkOrder,
		References: []masterdata.Reference{
			masterdata.Required("company_id", entity.MasterCompany, companyID),
			masterdata.Required("vessel_id", entity.MasterVessel, in.VesselID),
			masterdata.Required("responsible_id", entity.MasterEmployee, in.ResponsibleID),
		},
		Persist: func(ctx context.Context, uow repository.UnitOfWork, n entity.Numbering) error {
			w.Numbering = n
			return uow.WorkOrders().Create(ctx, w)
		},
	})
	if err != nil {
		return nil, err
	}
	w.Numbering = n
	return toWorkOrderResponse(w), nil
}

// Update modifica responsable, vencimiento y descripción.
func (uc *WorkOrderUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	dueDate, err := parseDate("due_date", in.DueDate)
	if err != nil {
		return nil, err
	}
	if in.ResponsibleID != nil {
		if err := uc.refs.Check(ctx, masterdata.Required("responsible_id", entity.MasterEmployee, *in.ResponsibleID)); err != nil {
			return nil, err
		}
	}

	var w *entity.WorkOrder
	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		w, err = uow.WorkOrders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if w == nil || w.CompanyID != companyID {
			return domain.NotFound("id", "work order %s not found", id)
		}
		if in.ResponsibleID != nil {
			w.ResponsibleID = *in.ResponsibleID
		}
		if dueDate != nil {
			if dueDate.Before(w.DocumentDate) {
				return domain.Validation("due_date", "due_date cannot be before document_date")
			}
			w.DueDate = *dueDate
		}
		if in.Description != nil {
			if strings.TrimSpace(*in.Description) == "" {
				return domain.Validation("description", "description is required")
			}
			w.Description = *in.Description
		}
		w.UpdatedAt = uc.now()
		return uow.WorkOrders().Update(ctx, w)
	})
	if err != nil {
		return nil, err
	}
	return toWorkOrderResponse(w), nil
}

// Get obtiene una orden de trabajo de la empresa.
func (uc *WorkOrderUseCase) Get(ctx context.Context, companyID, id string) (*dto.WorkOrderResponse, error) {
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil || w.CompanyID != companyID {
		return nil, domain.NotFound("id", "work order %s not found", id)
	}
	return toWorkOrderResponse(w), nil
}

func toWorkOrderResponse(w *entity.WorkOrder) *dto.WorkOrderResponse {
	return &dto.WorkOrderResponse{
		ID:            w.ID,
		CompanyID:     w.CompanyID,
		Numbering:     toNumberingResponse(w.Numbering),
		VesselID:      w.VesselID,
		ResponsibleID: w.ResponsibleID,
		DocumentDate:  formatDate(w.DocumentDate),
		DueDate:       formatDate(w.DueDate),
		Description:   w.Description,
	}
}
