package registry

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Personal-api/internal/application/audit"
	"github.com/jhoicas/Personal-api/internal/application/dto"
	"github.com/jhoicas/Personal-api/internal/application/personnel"
	"github.com/jhoicas/Personal-api/internal/application/ports"
	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// PositionUseCase casos de uso de puestos; cada operación es una transacción con su entrada de bitácora.
type PositionUseCase struct {
	tx        ports.TxRunner
	identity  ports.IdentityProvider
	registry  *PositionRegistry
	directory *personnel.Directory
	unit      *audit.Unit
	now       func() time.Time
}

// NewPositionUseCase construye el caso de uso.
func NewPositionUseCase(tx ports.TxRunner, identity ports.IdentityProvider) *PositionUseCase {
	return &PositionUseCase{
		tx:        tx,
		identity:  identity,
		registry:  NewPositionRegistry(),
		directory: personnel.NewDirectory(),
		unit:      audit.NewUnit(tx),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithPublisher difunde tras el Commit las entradas de bitácora de puestos y estructuras.
func (uc *PositionUseCase) WithPublisher(p ports.AuditPublisher, log zerolog.Logger) *PositionUseCase {
	uc.unit.WithPublisher(p, log)
	return uc
}

// Create crea un puesto vacante. El código es único (DuplicateResource).
func (uc *PositionUseCase) Create(ctx context.Context, in dto.CreatePositionRequest) (*dto.PositionResponse, error) {
	actor, err := uc.identity.CurrentActor(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	p := &entity.Position{
		ID:          uuid.New().String(),
		Code:        code,
		Title:       in.Title,
		StructureID: in.StructureID,
		Status:      entity.PositionStatusVacant,
		Lifecycle:   entity.NewLifecycle(actor, now),
	}
	err = uc.unit.Run(ctx, func(repos ports.Repositories, trail *audit.Trail) error {
		exists, err := repos.Positions.ExistsByCode(ctx, code)
		if err != nil {
			return err
		}
		if exists {
			return domain.NewDuplicate(entity.EntityPosition, "code", code)
		}
		s, err := repos.Structures.GetByID(ctx, in.StructureID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NewNotFound(entity.EntityStructure, in.StructureID)
		}
		if err := repos.Positions.Create(ctx, p); err != nil {
			return err
		}
		if err := uc.registry.RecountStructure(ctx, repos, p.StructureID, now); err != nil {
			return err
		}
		return trail.Append(ctx, entity.EntityPosition, p.ID, entity.AuditActionCreate, actor, now,
			map[string]any{"code": code, "structure_id": p.StructureID})
	})
	if err != nil {
		return nil, err
	}
	return dto.ToPositionResponse(p), nil
}

// Delete borrado lógico de un puesto; solo si no tiene ocupante.
func (uc *PositionUseCase) Delete(ctx context.Context, id string) error {
	actor, err := uc.identity.CurrentActor(ctx)
	if err != nil {
		return err
	}
	now := uc.now()
	return uc.unit.Run(ctx, func(repos ports.Repositories, trail *audit.Trail) error {
		p, err := uc.registry.Resolve(ctx, repos, id)
		if err != nil {
			return err
		}
		if p.Status == entity.PositionStatusOccupied {
			return domain.NewInvalidOperation("no se puede eliminar un puesto ocupado: %s", p.Code)
		}
		p.MarkDeleted(actor, now)
		if err := repos.Positions.Update(ctx, p); err != nil {
			return err
		}
		if err := uc.registry.RecountStructure(ctx, repos, p.StructureID, now); err != nil {
			return err
		}
		return trail.Append(ctx, entity.EntityPosition, p.ID, entity.AuditActionDelete, actor, now, nil)
	})
}

// Assign asignación directa de un personal a un puesto (fuera del flujo de movimientos).
// Actualiza también la referencia del personal para no romper la coherencia puesto/personal.
func (uc *PositionUseCase) Assign(ctx context.Context, positionID string, in dto.AssignPositionRequest) (*dto.PositionResponse, error) {
	actor, err := uc.identity.CurrentActor(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	var out *entity.Position
	err = uc.unit.Run(ctx, func(repos ports.Repositories, trail *audit.Trail) error {
		p, err := uc.registry.Resolve(ctx, repos, positionID)
		if err != nil {
			return err
		}
		person, err := uc.directory.Resolve(ctx, repos, in.PersonnelID, true)
		if err != nil {
			return err
		}
		if !uc.directory.CanBeAssignedToPosition(person) {
			return domain.NewInvalidOperation("el personal %s no puede ocupar otro puesto", person.ID)
		}
		cumul := in.Cumul && person.CumulAuthorized
		if err := uc.registry.Assign(ctx, repos, p, person.ID, cumul, actor, now); err != nil {
			return err
		}
		person.TakePosition(p.ID, person.HasCurrentPosition())
		person.Touch(actor, now)
		if err := repos.Personnel.Update(ctx, person); err != nil {
			return err
		}
		out = p
		return trail.Append(ctx, entity.EntityPosition, p.ID, entity.AuditActionAssign, actor, now,
			map[string]any{"personnel_id": person.ID, "cumul": cumul})
	})
	if err != nil {
		return nil, err
	}
	return dto.ToPositionResponse(out), nil
}

// Release deja vacante el puesto y quita la referencia de sus ocupantes.
func (uc *PositionUseCase) Release(ctx context.Context, positionID string) (*dto.PositionResponse, error) {
	actor, err := uc.identity.CurrentActor(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	var out *entity.Position
	err = uc.unit.Run(ctx, func(repos ports.Repositories, trail *audit.Trail) error {
		p, err := uc.registry.Resolve(ctx, repos, positionID)
		if err != nil {
			return err
		}
		var occupants []string
		if p.PrimaryOccupantID != nil {
			occupants = append(occupants, *p.PrimaryOccupantID)
		}
		occupants = append(occupants, p.SecondaryOccupantIDs...)
		if err := uc.registry.Release(ctx, repos, p, "", actor, now); err != nil {
			return err
		}
		for _, id := range occupants {
			person, err := uc.directory.Resolve(ctx, repos, id, true)
			if err != nil {
				return err
			}
			person.DropPosition(p.ID)
			person.Touch(actor, now)
			if err := repos.Personnel.Update(ctx, person); err != nil {
				return err
			}
		}
		out = p
		return trail.Append(ctx, entity.EntityPosition, p.ID, entity.AuditActionRelease, actor, now,
			map[string]any{"released": occupants})
	})
	if err != nil {
		return nil, err
	}
	return dto.ToPositionResponse(out), nil
}

// Get obtiene un puesto.
func (uc *PositionUseCase) Get(ctx context.Context, id string) (*dto.PositionResponse, error) {
	var out *entity.Position
	err := uc.tx.Run(ctx, func(repos ports.Repositories) error {
		p, err := repos.Positions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFound(entity.EntityPosition, id)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToPositionResponse(out), nil
}

// ListByStructure lista los puestos de una estructura con paginación.
func (uc *PositionUseCase) ListByStructure(ctx context.Context, structureID string, page dto.PageRequest) ([]*dto.PositionResponse, error) {
	page.DefaultPage()
	var list []*entity.Position
	err := uc.tx.Run(ctx, func(repos ports.Repositories) error {
		var err error
		list, err = repos.Positions.ListByStructure(ctx, structureID, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PositionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ToPositionResponse(p))
	}
	return out, nil
}

// GetStructure obtiene una estructura con sus contadores de ocupación.
func (uc *PositionUseCase) GetStructure(ctx context.Context, id string) (*dto.StructureResponse, error) {
	var out *entity.Structure
	err := uc.tx.Run(ctx, func(repos ports.Repositories) error {
		s, err := repos.Structures.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NewNotFound(entity.EntityStructure, id)
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToStructureResponse(out), nil
}

// CreateStructure da de alta un nodo de la jerarquía, sin puestos. El código es único.
func (uc *PositionUseCase) CreateStructure(ctx context.Context, in dto.CreateStructureRequest) (*dto.StructureResponse, error) {
	actor, err := uc.identity.CurrentActor(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	s := &entity.Structure{
		ID:        uuid.New().String(),
		Code:      strings.ToUpper(strings.TrimSpace(in.Code)),
		Name:      in.Name,
		ParentID:  in.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.ApplyCounters(entity.PositionCounters{}, now)
	err = uc.unit.Run(ctx, func(repos ports.Repositories, trail *audit.Trail) error {
		if in.ParentID != nil {
			parent, err := repos.Structures.GetByID(ctx, *in.ParentID)
			if err != nil {
				return err
			}
			if parent == nil {
				return domain.NewNotFound(entity.EntityStructure, *in.ParentID)
			}
		}
		if err := repos.Structures.Create(ctx, s); err != nil {
			return err
		}
		return trail.Append(ctx, entity.EntityStructure, s.ID, entity.AuditActionCreate, actor, now,
			map[string]any{"code": s.Code})
	})
	if err != nil {
		return nil, err
	}
	return dto.ToStructureResponse(s), nil
}
