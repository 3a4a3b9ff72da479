package masterdata

import (
	"context"
	"strings"

	"github.com/jhoicas/pesquera-erp/internal/domain"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/domain/repository"
)

// Reference id de dato maestro referenciado por un campo del request.
type Reference struct {
	Field    string
	Kind     entity.MasterKind
	ID       string
	Required bool
}

// Required referencia obligatoria.
func Required(field string, kind entity.MasterKind, id string) Reference {
	return Reference{Field: field, Kind: kind, ID: id, Required: true}
}

// Optional referencia que solo se valida si viene informada.
func Optional(field string, kind entity.MasterKind, id *string) Reference {
	if id == nil {
		return Reference{Field: field, Kind: kind}
	}
	return Reference{Field: field, Kind: kind, ID: *id}
}

// Checker valida existencia de referencias antes de intentar cualquier escritura.
type Checker struct {
	repo repository.MasterDataRepository
}

// NewChecker construye el validador.
func NewChecker(repo repository.MasterDataRepository) *Checker {
	return &Checker{repo: repo}
}

// Check devuelve un error de validación nombrando el primer campo ausente o inexistente.
func (c *Checker) Check(ctx context.Context, refs ...Reference) error {
	for _, ref := range refs {
		id := strings.TrimSpace(ref.ID)
		if id == "" {
			if ref.Required {
				return domain.Validation(ref.Field, "%s is required", ref.Field)
			}
			continue
		}
		ok, err := c.repo.Exists(ctx, ref.Kind, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.Validation(ref.Field, "%s %s does not exist", ref.Kind, id)
		}
	}
	return nil
}
