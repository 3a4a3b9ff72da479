package treasury

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pesquera-erp/internal/application/dto"
	"github.com/jhoicas/pesquera-erp/internal/application/masterdata"
	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

// Service casos de uso del libro de caja.
type Service struct {
	txRunner   TxRunner
	movements  repository.TreasuryMovementRepository
	refs       *masterdata.Checker
	reconciler *Reconciler
	archive    ArchiveScheduler
	now        func() time.Time
	log        zerolog.Logger

	// archivados en curso por (movimiento, comprobante)
	pendingMu sync.Mutex
	pending   map[string]struct{}
}

// NewService construye el servicio. movements debe ser un repositorio fuera de transacción:
// se usa para lecturas y para registrar el resultado del archivado.
func NewService(txRunner TxRunner, movements repository.TreasuryMovementRepository, refs *masterdata.Checker, reconciler *Reconciler, archive ArchiveScheduler, log zerolog.Logger) *Service {
	return &Service{
		txRunner:   txRunner,
		movements:  movements,
		refs:       refs,
		reconciler: reconciler,
		archive:    archive,
		now:        time.Now,
		log:        log.With().Str("component", "treasury").Logger(),
		pending:    map[string]struct{}{},
	}
}

// Create registra un movimiento PENDIENTE que apunta a la liquidación de su módulo de origen.
// La liquidación debe existir y no estar validada. Tras el commit se archiva el comprobante.
func (s *Service) Create(ctx context.Context, in dto.CreateTreasuryMovementRequest) (*dto.TreasuryMovementResponse, error) {
	origin, err := entity.ParseOrigin(in.OriginModule, in.OriginRecordID)
	if err != nil {
		return nil, err
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.Validation("amount", "amount must be greater than zero")
	}
	if err := s.refs.Check(ctx,
		masterdata.Required("origin_account_id", entity.MasterAccount, in.OriginAccountID),
		masterdata.Optional("destination_account_id", entity.MasterAccount, in.DestinationAccountID),
		masterdata.Required("origin_company_id", entity.MasterCompany, in.OriginCompanyID),
		masterdata.Optional("destination_company_id", entity.MasterCompany, in.DestinationCompanyID),
		masterdata.Required("movement_type_id", entity.MasterMovementType, in.MovementTypeID),
		masterdata.Required("currency_id", entity.MasterCurrency, in.CurrencyID),
		masterdata.Optional("entity_id", entity.MasterEntity, in.EntityID),
		masterdata.Optional("product_id", entity.MasterProduct, in.ProductID),
	); err != nil {
		return nil, err
	}

	now := s.now()
	m := &entity.TreasuryMovement{
		ID:                   uuid.New().String(),
		OriginAccountID:      in.OriginAccountID,
		DestinationAccountID: blankToNil(in.DestinationAccountID),
		OriginCompanyID:      in.OriginCompanyID,
		DestinationCompanyID: blankToNil(in.DestinationCompanyID),
		MovementTypeID:       in.MovementTypeID,
		CurrencyID:           in.CurrencyID,
		Amount:               in.Amount,
		State:                entity.MovementStatePending,
		Origin:               origin,
		EntityID:             blankToNil(in.EntityID),
		ProductID:            blankToNil(in.ProductID),
		NoInvoice:            in.NoInvoice,
		DocumentURL:          strings.TrimSpace(in.DocumentURL),
		ReceiptURL:           strings.TrimSpace(in.ReceiptURL),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err = s.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		rec, err := s.reconciler.Locate(ctx, uow.Settlements(), origin)
		if err != nil {
			return err
		}
		// Sin comprobante propio, el movimiento hereda el de la liquidación.
		if m.ReceiptURL == "" {
			m.ReceiptURL = rec.Sync().ReceiptURL
		}
		if m.DocumentURL == "" {
			m.DocumentURL = rec.Sync().DocumentURL
		}
		return uow.Movements().Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("movement_id", m.ID).
		Int("origin_module", int(origin.Module())).
		Str("origin_record_id", origin.RecordID()).
		Msg("movimiento registrado")

	s.scheduleArchive(ctx, m)
	return s.Get(ctx, m.ID)
}

// Amend modifica un movimiento PENDIENTE. El origen no se puede cambiar.
func (s *Service) Amend(ctx context.Context, id string, in dto.UpdateTreasuryMovementRequest) (*dto.TreasuryMovementResponse, error) {
	if in.Amount != nil && !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.Validation("amount", "amount must be greater than zero")
	}
	var refs []masterdata.Reference
	if in.OriginAccountID != nil {
		refs = append(refs, masterdata.Required("origin_account_id", entity.MasterAccount, *in.OriginAccountID))
	}
	if in.MovementTypeID != nil {
		refs = append(refs, masterdata.Required("movement_type_id", entity.MasterMovementType, *in.MovementTypeID))
	}
	if in.CurrencyID != nil {
		refs = append(refs, masterdata.Required("currency_id", entity.MasterCurrency, *in.CurrencyID))
	}
	refs = append(refs,
		masterdata.Optional("destination_account_id", entity.MasterAccount, in.DestinationAccountID),
		masterdata.Optional("destination_company_id", entity.MasterCompany, in.DestinationCompanyID),
		masterdata.Optional("entity_id", entity.MasterEntity, in.EntityID),
		masterdata.Optional("product_id", entity.MasterProduct, in.ProductID),
	)
	if err := s.refs.Check(ctx, refs...); err != nil {
		return nil, err
	}

	var (
		m              *entity.TreasuryMovement
		receiptChanged bool
	)
	err := s.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		m, err = uow.Movements().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NotFound("id", "treasury movement %s not found", id)
		}
		if err := ensurePending(m, "amend"); err != nil {
			return err
		}
		if in.OriginAccountID != nil {
			m.OriginAccountID = *in.OriginAccountID
		}
		if in.DestinationAccountID != nil {
			m.DestinationAccountID = blankToNil(in.DestinationAccountID)
		}
		if in.DestinationCompanyID != nil {
			m.DestinationCompanyID = blankToNil(in.DestinationCompanyID)
		}
		if in.MovementTypeID != nil {
			m.MovementTypeID = *in.MovementTypeID
		}
		if in.CurrencyID != nil {
			m.CurrencyID = *in.CurrencyID
		}
		if in.Amount != nil {
			m.Amount = *in.Amount
		}
		if in.EntityID != nil {
			m.EntityID = blankToNil(in.EntityID)
		}
		if in.ProductID != nil {
			m.ProductID = blankToNil(in.ProductID)
		}
		if in.NoInvoice != nil {
			m.NoInvoice = *in.NoInvoice
		}
		if in.DocumentURL != nil {
			m.DocumentURL = strings.TrimSpace(*in.DocumentURL)
		}
		if in.ReceiptURL != nil && strings.TrimSpace(*in.ReceiptURL) != m.ReceiptURL {
			m.ReceiptURL = strings.TrimSpace(*in.ReceiptURL)
			m.ArchivedAt = nil
			receiptChanged = true
		}
		m.UpdatedAt = s.now()
		return uow.Movements().Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	if receiptChanged {
		s.scheduleArchive(ctx, m)
	}
	return toMovementResponse(m), nil
}

// Delete elimina un movimiento PENDIENTE. Un movimiento validado no se borra nunca.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		m, err := uow.Movements().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NotFound("id", "treasury movement %s not found", id)
		}
		if err := ensurePending(m, "delete"); err != nil {
			return err
		}
		deleted, err := uow.Movements().Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.Conflict("id", "treasury movement %s changed state concurrently", id)
		}
		return nil
	})
}

// Get devuelve el movimiento.
func (s *Service) Get(ctx context.Context, id string) (*dto.TreasuryMovementResponse, error) {
	m, err := s.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NotFound("id", "treasury movement %s not found", id)
	}
	return toMovementResponse(m), nil
}

// Validate pasa el movimiento a VALIDADO y concilia la liquidación de origen en la misma
// transacción. Si la conciliación falla el movimiento queda PENDIENTE. El comprobante se
// archiva después del commit.
func (s *Service) Validate(ctx context.Context, id string) (*dto.TreasuryMovementResponse, error) {
	var m *entity.TreasuryMovement
	err := s.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		m, err = uow.Movements().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NotFound("id", "treasury movement %s not found", id)
		}
		if err := ensurePending(m, "validate"); err != nil {
			return err
		}
		at := s.now()
		if err := s.reconciler.Reconcile(ctx, uow.Settlements(), m.Origin, m.Snapshot(at)); err != nil {
			return err
		}
		if err := markValidated(m, at); err != nil {
			return err
		}
		return uow.Movements().Update(ctx, m)
	})
	if err != nil {
		s.log.Warn().Err(err).Str("movement_id", id).Msg("validación rechazada")
		return nil, err
	}
	s.log.Info().
		Str("movement_id", m.ID).
		Int("origin_module", int(m.Origin.Module())).
		Str("origin_record_id", m.Origin.RecordID()).
		Msg("movimiento validado")

	if m.ArchivedAt == nil {
		s.scheduleArchive(ctx, m)
	}
	return s.Get(ctx, m.ID)
}

// scheduleArchive pide una copia del comprobante y, si se produce, reescribe la ruta en el movimiento.
// No encola de nuevo un comprobante que ya tiene un archivado en curso para el mismo movimiento.
func (s *Service) scheduleArchive(ctx context.Context, m *entity.TreasuryMovement) {
	if s.archive == nil || m.ReceiptURL == "" {
		return
	}
	movementID := m.ID
	key := movementID + "|" + m.ReceiptURL
	s.pendingMu.Lock()
	if _, busy := s.pending[key]; busy {
		s.pendingMu.Unlock()
		s.log.Debug().Str("movement_id", movementID).Str("source", m.ReceiptURL).Msg("archivado ya en curso")
		return
	}
	s.pending[key] = struct{}{}
	s.pendingMu.Unlock()

	s.archive.Schedule(ctx, m.ReceiptURL, func(ctx context.Context, sourcePath, archivedPath string) {
		s.pendingMu.Lock()
		delete(s.pending, key)
		s.pendingMu.Unlock()
		if archivedPath == "" {
			return
		}
		updated, err := s.movements.UpdateArchivedReceipt(ctx, movementID, sourcePath, archivedPath, s.now())
		if err != nil {
			s.log.Warn().Err(err).Str("movement_id", movementID).Msg("no se pudo registrar el comprobante archivado")
			return
		}
		if !updated {
			s.log.Info().
				Str("movement_id", movementID).
				Str("source", sourcePath).
				Str("archived", archivedPath).
				Msg("comprobante reemplazado durante el archivado, copia no registrada")
		}
	})
}

func blankToNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func toMovementResponse(m *entity.TreasuryMovement) *dto.TreasuryMovementResponse {
	out := &dto.TreasuryMovementResponse{
		ID:                   m.ID,
		OriginAccountID:      m.OriginAccountID,
		DestinationAccountID: m.DestinationAccountID,
		OriginCompanyID:      m.OriginCompanyID,
		DestinationCompanyID: m.DestinationCompanyID,
		MovementTypeID:       m.MovementTypeID,
		CurrencyID:           m.CurrencyID,
		Amount:               m.Amount,
		StateID:              int(m.State),
		State:                m.State.String(),
		EntityID:             m.EntityID,
		ProductID:            m.ProductID,
		NoInvoice:            m.NoInvoice,
		DocumentURL:          m.DocumentURL,
		ReceiptURL:           m.ReceiptURL,
		ArchivedAt:           formatTimestamp(m.ArchivedAt),
		ValidatedAt:          formatTimestamp(m.ValidatedAt),
	}
	if m.Origin != nil {
		out.OriginModule = int(m.Origin.Module())
		out.OriginRecordID = m.Origin.RecordID()
	}
	return out
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}
