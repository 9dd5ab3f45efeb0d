package personnel

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Personal-api/internal/application/audit"
	"github.com/jhoicas/Personal-api/internal/application/dto"
	"github.com/jhoicas/Personal-api/internal/application/ports"
	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// UseCase altas y consultas de personal. El cambio de puesto solo ocurre vía movimientos.
type UseCase struct {
	tx        ports.TxRunner
	identity  ports.IdentityProvider
	directory *Directory
	unit      *audit.Unit
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner, identity ports.IdentityProvider) *UseCase {
	return &UseCase{tx: tx, identity: identity, directory: NewDirectory(), unit: audit.NewUnit(tx), now: func() time.Time { return time.Now().UTC() }}
}

// WithPublisher difunde tras el Commit las entradas de bitácora del personal.
func (uc *UseCase) WithPublisher(p ports.AuditPublisher, log zerolog.Logger) *UseCase {
	uc.unit.WithPublisher(p, log)
	return uc
}

// Register da de alta un personal activo, sin puesto.
func (uc *UseCase) Register(ctx context.Context, in dto.CreatePersonnelRequest) (*dto.PersonnelResponse, error) {
	actor, err := uc.identity.CurrentActor(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	p := &entity.Personnel{
		ID:              uuid.New().String(),
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Status:          entity.PersonnelStatusActive,
		StructureID:     in.StructureID,
		CumulAuthorized: in.CumulAuthorized,
		Lifecycle:       entity.NewLifecycle(actor, now),
	}
	if in.RegistrationNumber != nil && *in.RegistrationNumber != "" {
		p.RegistrationNumber = in.RegistrationNumber
	}
	err = uc.unit.Run(ctx, func(repos ports.Repositories, trail *audit.Trail) error {
		if p.StructureID != nil {
			s, err := repos.Structures.GetByID(ctx, *p.StructureID)
			if err != nil {
				return err
			}
			if s == nil {
				return domain.NewNotFound(entity.EntityStructure, *p.StructureID)
			}
		}
		if err := repos.Personnel.Create(ctx, p); err != nil {
			return err
		}
		return trail.Append(ctx, entity.EntityPersonnel, p.ID, entity.AuditActionCreate, actor, now,
			map[string]any{"unregistered": p.IsUnregistered()})
	})
	if err != nil {
		return nil, err
	}
	return dto.ToPersonnelResponse(p), nil
}

// SetCumulAuthorization concede o retira la autorización de cumul (compare-and-swap sobre la versión).
func (uc *UseCase) SetCumulAuthorization(ctx context.Context, id string, in dto.CumulAuthorizationRequest) (*dto.PersonnelResponse, error) {
	actor, err := uc.identity.CurrentActor(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	var out *entity.Personnel
	err = uc.unit.Run(ctx, func(repos ports.Repositories, trail *audit.Trail) error {
		p, err := uc.directory.Resolve(ctx, repos, id, true)
		if err != nil {
			return err
		}
		if in.Version != nil && *in.Version != p.Version {
			return domain.NewConcurrencyConflict(entity.EntityPersonnel, id, *in.Version)
		}
		if !in.Authorized && len(p.CumulPositionIDs) > 0 {
			return domain.NewInvalidOperation("el personal tiene puestos acumulados vigentes")
		}
		p.CumulAuthorized = in.Authorized
		p.Touch(actor, now)
		if err := repos.Personnel.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return trail.Append(ctx, entity.EntityPersonnel, p.ID, entity.AuditActionUpdate, actor, now,
			map[string]any{"cumul_authorized": in.Authorized})
	})
	if err != nil {
		return nil, err
	}
	return dto.ToPersonnelResponse(out), nil
}

// Get obtiene un personal por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.PersonnelResponse, error) {
	var out *entity.Personnel
	err := uc.tx.Run(ctx, func(repos ports.Repositories) error {
		p, err := uc.directory.Resolve(ctx, repos, id, false)
		out = p
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto.ToPersonnelResponse(out), nil
}
