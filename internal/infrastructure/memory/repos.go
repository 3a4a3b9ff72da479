package memory

import (
	"context"
	"time"

	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
)

type seriesRepo struct{ u *unitOfWork }

func (r seriesRepo) GetByID(ctx context.Context, id string) (*entity.DocumentSeries, error) {
	defer r.u.lock()()
	v, ok := r.u.store.st.series[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// GetForUpdate: la exclusión mutua de Run hace de bloqueo de fila.
func (r seriesRepo) GetForUpdate(ctx context.Context, id string) (*entity.DocumentSeries, error) {
	return r.GetByID(ctx, id)
}

func (r seriesRepo) UpdateCorrelativo(ctx context.Context, id string, correlativo int64) error {
	defer r.u.lock()()
	if err := r.u.store.takeFailure("series.update"); err != nil {
		return err
	}
	v, ok := r.u.store.st.series[id]
	if !ok {
		return domain.NotFound("series_id", "series %s not found", id)
	}
	if correlativo < v.Correlativo {
		return domain.Conflict("correlativo", "series %s counter cannot decrease", id)
	}
	v.Correlativo = correlativo
	v.UpdatedAt = time.Now()
	r.u.store.st.series[id] = v
	return nil
}

type contractRepo struct{ u *unitOfWork }

func (r contractRepo) Create(ctx context.Context, c *entity.Contract) error {
	defer r.u.lock()()
	if err := r.u.store.takeFailure("contracts.create"); err != nil {
		return err
	}
	for _, existing := range r.u.store.st.contracts {
		if existing.Numbering.SeriesID == c.Numbering.SeriesID && existing.Numbering.FullNumber == c.Numbering.FullNumber {
			return domain.Conflict("full_number", "document number %s already issued", c.Numbering.FullNumber)
		}
	}
	r.u.store.st.contracts[c.ID] = *c
	return nil
}

func (r contractRepo) Update(ctx context.Context, c *entity.Contract) error {
	defer r.u.lock()()
	existing, ok := r.u.store.st.contracts[c.ID]
	if !ok {
		return domain.NotFound("id", "contract %s not found", c.ID)
	}
	updated := *c
	updated.Numbering = existing.Numbering
	updated.CreatedAt = existing.CreatedAt
	r.u.store.st.contracts[c.ID] = updated
	return nil
}

func (r contractRepo) GetByID(ctx context.Context, id string) (*entity.Contract, error) {
	defer r.u.lock()()
	v, ok := r.u.store.st.contracts[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r contractRepo) ExistsActiveForVessel(ctx context.Context, vesselID, excludeID string) (bool, error) {
	defer r.u.lock()()
	today := time.Now().Truncate(24 * time.Hour)
	for _, c := range r.u.store.st.contracts {
		if c.ID == excludeID || c.VesselID == nil || *c.VesselID != vesselID {
			continue
		}
		if !c.EndDate.Before(today) {
			return true, nil
		}
	}
	return false, nil
}

type quotationRepo struct{ u *unitOfWork }

func (r quotationRepo) Create(ctx context.Context, q *entity.SalesQuotation) error {
	defer r.u.lock()()
	if err := r.u.store.takeFailure("quotations.create"); err != nil {
		return err
	}
	r.u.store.st.quotations[q.ID] = *q
	return nil
}

func (r quotationRepo) Update(ctx context.Context, q *entity.SalesQuotation) error {
	defer r.u.lock()()
	existing, ok := r.u.store.st.quotations[q.ID]
	if !ok {
		return domain.NotFound("id", "sales quotation %s not found", q.ID)
	}
	updated := *q
	updated.Numbering = existing.Numbering
	updated.CreatedAt = existing.CreatedAt
	r.u.store.st.quotations[q.ID] = updated
	return nil
}

func (r quotationRepo) GetByID(ctx context.Context, id string) (*entity.SalesQuotation, error) {
	defer r.u.lock()()
	v, ok := r.u.store.st.quotations[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

type workOrderRepo struct{ u *unitOfWork }

func (r workOrderRepo) Create(ctx context.Context, w *entity.WorkOrder) error {
	defer r.u.lock()()
	if err := r.u.store.takeFailure("work_orders.create"); err != nil {
		return err
	}
	r.u.store.st.workOrders[w.ID] = *w
	return nil
}

func (r workOrderRepo) Update(ctx context.Context, w *entity.WorkOrder) error {
	defer r.u.lock()()
	existing, ok := r.u.store.st.workOrders[w.ID]
	if !ok {
		return domain.NotFound("id", "work order %s not found", w.ID)
	}
	updated := *w
	updated.Numbering = existing.Numbering
	updated.CreatedAt = existing.CreatedAt
	r.u.store.st.workOrders[w.ID] = updated
	return nil
}

func (r workOrderRepo) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	defer r.u.lock()()
	v, ok := r.u.store.st.workOrders[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

type movementRepo struct{ u *unitOfWork }

func (r movementRepo) Create(ctx context.Context, m *entity.TreasuryMovement) error {
	defer r.u.lock()()
	if err := r.u.store.takeFailure("movements.create"); err != nil {
		return err
	}
	r.u.store.st.movements[m.ID] = *m
	return nil
}

func (r movementRepo) Update(ctx context.Context, m *entity.TreasuryMovement) error {
	defer r.u.lock()()
	if err := r.u.store.takeFailure("movements.update"); err != nil {
		return err
	}
	if _, ok := r.u.store.st.movements[m.ID]; !ok {
		return domain.NotFound("id", "treasury movement %s not found", m.ID)
	}
	r.u.store.st.movements[m.ID] = *m
	return nil
}

func (r movementRepo) GetByID(ctx context.Context, id string) (*entity.TreasuryMovement, error) {
	defer r.u.lock()()
	v, ok := r.u.store.st.movements[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r movementRepo) GetForUpdate(ctx context.Context, id string) (*entity.TreasuryMovement, error) {
	return r.GetByID(ctx, id)
}

func (r movementRepo) Delete(ctx context.Context, id string) (bool, error) {
	defer r.u.lock()()
	v, ok := r.u.store.st.movements[id]
	if !ok || !v.IsPending() {
		return false, nil
	}
	delete(r.u.store.st.movements, id)
	return true, nil
}

func (r movementRepo) UpdateArchivedReceipt(ctx context.Context, id, sourceURL, archivedURL string, archivedAt time.Time) (bool, error) {
	defer r.u.lock()()
	v, ok := r.u.store.st.movements[id]
	if !ok || v.ReceiptURL != sourceURL {
		return false, nil
	}
	v.ReceiptURL = archivedURL
	v.ArchivedAt = &archivedAt
	r.u.store.st.movements[id] = v
	return true, nil
}

type masterRepo struct{ u *unitOfWork }

func (r masterRepo) Exists(ctx context.Context, kind entity.MasterKind, id string) (bool, error) {
	defer r.u.lock()()
	return r.u.store.st.master[kind][id], nil
}
