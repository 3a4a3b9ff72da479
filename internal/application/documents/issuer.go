package documents

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/pesquera-erp/internal/application/masterdata"
	"github.com/jhoicas/pesquera-erp/internal/application/numbering"
	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

// IssueRequest describe la emisión de un documento numerado de cualquier módulo.
type IssueRequest struct {
	CompanyID    string
	SeriesID     string
	DocumentType entity.DocumentType
	References   []masterdata.Reference
	// Persist inserta el documento con la numeración asignada, usando uow (misma transacción).
	Persist func(ctx context.Context, uow repository.UnitOfWork, n entity.Numbering) error
}

// Issuer operación común a todos los módulos que emiten documentos numerados.
type Issuer struct {
	txRunner TxRunner
	refs     *masterdata.Checker
	alloc    *numbering.Allocator
	log      zerolog.Logger
}

// NewIssuer construye el emisor.
func NewIssuer(txRunner TxRunner, refs *masterdata.Checker, alloc *numbering.Allocator, log zerolog.Logger) *Issuer {
	return &Issuer{
		txRunner: txRunner,
		refs:     refs,
		alloc:    alloc,
		log:      log.With().Str("component", "issuer").Logger(),
	}
}

// Issue valida referencias fuera de la transacción y luego, en una sola transacción, asigna
// el correlativo y persiste el documento. Si Persist falla, el contador no avanza.
func (i *Issuer) Issue(ctx context.Context, req IssueRequest) (entity.Numbering, error) {
	if strings.TrimSpace(req.SeriesID) == "" {
		return entity.Numbering{}, domain.Validation("series_id", "a document series must be selected")
	}
	if err := i.refs.Check(ctx, req.References...); err != nil {
		return entity.Numbering{}, err
	}

	var n entity.Numbering
	err := i.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		n, err = i.alloc.Allocate(ctx, uow.Series(), numbering.Request{
			SeriesID:     req.SeriesID,
			CompanyID:    req.CompanyID,
			DocumentType: req.DocumentType,
		})
		if err != nil {
			return err
		}
		return req.Persist(ctx, uow, n)
	})
	if err != nil {
		i.log.Warn().Err(err).
			Str("series_id", req.SeriesID).
			Str("document_type", string(req.DocumentType)).
			Msg("emisión rechazada")
		return entity.Numbering{}, err
	}
	i.log.Info().
		Str("document_type", string(req.DocumentType)).
		Str("full_number", n.FullNumber).
		Msg("documento emitido")
	return n, nil
}
