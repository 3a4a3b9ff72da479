package numbering_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pesquera-erp/internal/application/numbering"
	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
	"github.com/jhoicas/pesquera-erp/internal/infrastructure/memory"
)

const testCompanyID = "00000000-0000-0000-0000-000000000002"

func seriesSeven() entity.DocumentSeries {
	return entity.DocumentSeries{
		ID:                   "serie-7",
		CompanyID:            testCompanyID,
		DocumentType:         entity.DocumentTypeContract,
		Serie:                "7",
		Correlativo:          10,
		LeftZerosSeries:      3,
		LeftZerosCorrelativo: 6,
		Active:               true,
	}
}

func allocate(t *testing.T, store *memory.Store, req numbering.Request) (entity.Numbering, error) {
	t.Helper()
	alloc := numbering.NewAllocator(zerolog.Nop())
	var n entity.Numbering
	err := store.Run(context.Background(), func(uow repository.UnitOfWork) error {
		var err error
		n, err = alloc.Allocate(context.Background(), uow.Series(), req)
		return err
	})
	return n, err
}

func TestAllocate_AdvancesAndFormats(t *testing.T) {
	store := memory.NewStore()
	store.AddSeries(seriesSeven())

	n, err := allocate(t, store, numbering.Request{SeriesID: "serie-7", CompanyID: testCompanyID, DocumentType: entity.DocumentTypeContract})

	require.NoError(t, err)
	assert.Equal(t, "007-000011", n.FullNumber)
	assert.Equal(t, int64(11), store.Series("serie-7").Correlativo)
}

func TestAllocate_ValidationErrors(t *testing.T) {
	inactive := seriesSeven()
	inactive.ID = "serie-inactiva"
	inactive.Active = false

	cases := []struct {
		name string
		req  numbering.Request
	}{
		{"sin serie", numbering.Request{SeriesID: "  "}},
		{"serie inexistente", numbering.Request{SeriesID: "no-existe"}},
		{"serie inactiva", numbering.Request{SeriesID: "serie-inactiva"}},
		{"otra empresa", numbering.Request{SeriesID: "serie-7", CompanyID: "otra"}},
		{"otro tipo de documento", numbering.Request{SeriesID: "serie-7", DocumentType: entity.DocumentTypeWorkOrder}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.NewStore()
			store.AddSeries(seriesSeven())
			store.AddSeries(inactive)

			_, err := allocate(t, store, tc.req)

			require.Error(t, err)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
			assert.Equal(t, int64(10), store.Series("serie-7").Correlativo)
		})
	}
}

func TestAllocate_RollbackKeepsCounter(t *testing.T) {
	store := memory.NewStore()
	store.AddSeries(seriesSeven())
	alloc := numbering.NewAllocator(zerolog.Nop())
	boom := errors.New("insert failed")

	err := store.Run(context.Background(), func(uow repository.UnitOfWork) error {
		if _, err := alloc.Allocate(context.Background(), uow.Series(), numbering.Request{SeriesID: "serie-7"}); err != nil {
			return err
		}
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, int64(10), store.Series("serie-7").Correlativo)
}
