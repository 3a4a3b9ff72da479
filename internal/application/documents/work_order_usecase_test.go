package documents_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pesquera-erp/internal/application/dto"
	"github.com/jhoicas/pesquera-erp/internal/domain"
)

func workOrderRequest() dto.CreateWorkOrderRequest {
	return dto.CreateWorkOrderRequest{
		SeriesID:      "serie-ot",
		VesselID:      vesselID,
		ResponsibleID: responsible,
		DocumentDate:  strPtr("2026-10-15"),
		Description:   "cambio de redes",
	}
}

func TestWorkOrderCreate_DefaultDueDate(t *testing.T) {
	f := newFixture()

	out, err := f.workOrders.Create(context.Background(), companyID, workOrderRequest())

	require.NoError(t, err)
	assert.Equal(t, "002-000001", out.Numbering.FullNumber)
	assert.Equal(t, "2026-10-22", out.DueDate)
}

func TestWorkOrderCreate_RequiresDescription(t *testing.T) {
	f := newFixture()
	in := workOrderRequest()
	in.Description = "  "

	_, err := f.workOrders.Create(context.Background(), companyID, in)

	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestWorkOrderCreate_FailedInsertRollsBack(t *testing.T) {
	f := newFixture()
	f.store.FailNext("work_orders.create", errors.New("constraint"))

	_, err := f.workOrders.Create(context.Background(), companyID, workOrderRequest())

	require.Error(t, err)
	assert.Equal(t, int64(0), f.store.Series("serie-ot").Correlativo)
}

func TestWorkOrderUpdate(t *testing.T) {
	f := newFixture()
	created, err := f.workOrders.Create(context.Background(), companyID, workOrderRequest())
	require.NoError(t, err)

	out, err := f.workOrders.Update(context.Background(), companyID, created.ID, dto.UpdateWorkOrderRequest{
		DueDate: strPtr("2026-10-01"),
	})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Nil(t, out)

	out, err = f.workOrders.Update(context.Background(), companyID, created.ID, dto.UpdateWorkOrderRequest{
		Description: strPtr("cambio de redes y winche"),
	})
	require.NoError(t, err)
	assert.Equal(t, created.Numbering, out.Numbering)
	assert.Equal(t, "cambio de redes y winche", out.Description)
}
