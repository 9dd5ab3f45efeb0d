// Package registry administra la ocupación de los puestos y los contadores desnormalizados
// de la estructura dueña.
package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Personal-api/internal/application/ports"
	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// MsgPositionNotAvailable mensaje de InvalidOperation cuando el puesto no admite la asignación.
const MsgPositionNotAvailable = "puesto no disponible"

// PositionRegistry operaciones sobre puestos dentro de una transacción ya abierta.
type PositionRegistry struct{}

// NewPositionRegistry construye el registro.
func NewPositionRegistry() *PositionRegistry {
	return &PositionRegistry{}
}

// IsAvailableForAssignment predicado puro: el puesto está vacante.
func (r *PositionRegistry) IsAvailableForAssignment(p *entity.Position) bool {
	return p.IsAvailableForAssignment()
}

// Assign ocupa el puesto. Requiere VACANT salvo que cumulOverride permita agregar un ocupante
// secundario a un puesto ya ocupado. Recalcula los contadores de la estructura.
func (r *PositionRegistry) Assign(
	ctx context.Context,
	repos ports.Repositories,
	position *entity.Position,
	personnelID string,
	cumulOverride bool,
	actor string,
	now time.Time,
) error {
	if !r.IsAvailableForAssignment(position) && !cumulOverride {
		return domain.NewInvalidOperation("%s: %s (%s)", MsgPositionNotAvailable, position.Code, position.Status)
	}
	if err := position.Occupy(personnelID, cumulOverride, now); err != nil {
		return domain.NewInvalidOperation("%s: %s", MsgPositionNotAvailable, err.Error())
	}
	position.Touch(actor, now)
	if err := repos.Positions.Update(ctx, position); err != nil {
		return err
	}
	return r.RecountStructure(ctx, repos, position.StructureID, now)
}

// Release retira al personal del puesto (o lo deja vacante si personnelID es vacío)
// y recalcula los contadores de la estructura.
func (r *PositionRegistry) Release(
	ctx context.Context,
	repos ports.Repositories,
	position *entity.Position,
	personnelID string,
	actor string,
	now time.Time,
) error {
	position.Vacate(personnelID, now)
	position.Touch(actor, now)
	if err := repos.Positions.Update(ctx, position); err != nil {
		return err
	}
	return r.RecountStructure(ctx, repos, position.StructureID, now)
}

// RecountStructure recuenta desde el conjunto autoritativo de puestos; nunca incrementa.
func (r *PositionRegistry) RecountStructure(ctx context.Context, repos ports.Repositories, structureID string, now time.Time) error {
	structure, err := repos.Structures.GetByID(ctx, structureID)
	if err != nil {
		return err
	}
	if structure == nil {
		return domain.NewNotFound(entity.EntityStructure, structureID)
	}
	counters, err := repos.Positions.CountByStructure(ctx, structureID)
	if err != nil {
		return fmt.Errorf("count positions of %s: %w", structureID, err)
	}
	structure.ApplyCounters(counters, now)
	return repos.Structures.UpdateCounters(ctx, structure)
}

// Resolve obtiene el puesto bloqueado para update, o NotFound.
func (r *PositionRegistry) Resolve(ctx context.Context, repos ports.Repositories, id string) (*entity.Position, error) {
	p, err := repos.Positions.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound(entity.EntityPosition, id)
	}
	return p, nil
}
