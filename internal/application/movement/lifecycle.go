package movement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Personal-api/internal/application/audit"
	"github.com/jhoicas/Personal-api/internal/application/dto"
	"github.com/jhoicas/Personal-api/internal/application/ports"
	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
	domainmov "github.com/jhoicas/Personal-api/internal/domain/movement"
	"github.com/jhoicas/Personal-api/internal/domain/repository"
)

// Create valida y registra un movimiento en estado PENDING. Orden de validación:
// personal; puesto destino (disponibilidad, autorización de cumul); compatibilidad cumul/tipo;
// estructuras origen/destino; persistencia y bitácora.
func (e *Engine) Create(ctx context.Context, in dto.CreateMovementRequest) (*entity.CareerMovement, error) {
	movementType, err := entity.ParseMovementType(in.MovementType)
	if err != nil {
		return nil, domain.NewInvalidOperation("%s", err.Error())
	}
	return e.unit(ctx, entity.AuditActionCreate, func(repos ports.Repositories, trail *audit.Trail, actor string, now time.Time) (*entity.CareerMovement, error) {
		person, err := e.directory.Resolve(ctx, repos, in.PersonnelID, false)
		if err != nil {
			return nil, err
		}
		if in.DestinationPositionID != nil {
			dest, err := requirePosition(ctx, repos, in.DestinationPositionID)
			if err != nil {
				return nil, err
			}
			if err := e.checkDestination(person, dest, in.IsOfficialCumul); err != nil {
				return nil, err
			}
		}
		if err := checkCumulType(in.IsOfficialCumul, movementType); err != nil {
			return nil, err
		}
		if _, err := requirePosition(ctx, repos, in.SourcePositionID); err != nil {
			return nil, err
		}
		if err := requireStructure(ctx, repos, in.SourceStructureID); err != nil {
			return nil, err
		}
		if err := requireStructure(ctx, repos, in.DestinationStructureID); err != nil {
			return nil, err
		}

		m := &entity.CareerMovement{
			ID:                     uuid.New().String(),
			PersonnelID:            person.ID,
			SourcePositionID:       in.SourcePositionID,
			DestinationPositionID:  in.DestinationPositionID,
			SourceStructureID:      in.SourceStructureID,
			DestinationStructureID: in.DestinationStructureID,
			Type:                   movementType,
			IsOfficialCumul:        in.IsOfficialCumul,
			Status:                 entity.MovementStatusPending,
			EffectiveDate:          in.EffectiveDate,
			Reason:                 in.Reason,
			Decision:               in.Decision.ToEntity(),
			Lifecycle:              entity.NewLifecycle(actor, now),
		}
		if err := repos.Movements.Create(ctx, m); err != nil {
			return nil, err
		}
		return m, trail.Append(ctx, entity.EntityCareerMovement, m.ID, entity.AuditActionCreate, actor, now, map[string]any{
			"personnel_id":  m.PersonnelID,
			"movement_type": string(m.Type),
			"cumul":         m.IsOfficialCumul,
		})
	})
}

// Update aplica cambios parciales mientras el movimiento no esté ejecutado.
func (e *Engine) Update(ctx context.Context, id string, in dto.UpdateMovementRequest) (*entity.CareerMovement, error) {
	return e.unit(ctx, entity.AuditActionUpdate, func(repos ports.Repositories, trail *audit.Trail, actor string, now time.Time) (*entity.CareerMovement, error) {
		m, err := loadMovement(ctx, repos, id)
		if err != nil {
			return nil, err
		}
		if err := domainmov.EnsureMutable(m); err != nil {
			return nil, err
		}
		if err := checkVersion(m, in.Version); err != nil {
			return nil, err
		}
		changed := map[string]any{}
		if in.MovementType != nil {
			t, err := entity.ParseMovementType(*in.MovementType)
			if err != nil {
				return nil, domain.NewInvalidOperation("%s", err.Error())
			}
			m.Type = t
			changed["movement_type"] = string(t)
		}
		if in.IsOfficialCumul != nil {
			m.IsOfficialCumul = *in.IsOfficialCumul
			changed["cumul"] = m.IsOfficialCumul
		}
		if in.SourcePositionID != nil {
			if _, err := requirePosition(ctx, repos, in.SourcePositionID); err != nil {
				return nil, err
			}
			m.SourcePositionID = in.SourcePositionID
			changed["source_position_id"] = *in.SourcePositionID
		}
		if in.DestinationPositionID != nil {
			m.DestinationPositionID = in.DestinationPositionID
			changed["destination_position_id"] = *in.DestinationPositionID
		}
		// Mismas reglas de puesto destino que en create cuando cambia el destino o el cumul.
		if m.DestinationPositionID != nil && (in.DestinationPositionID != nil || in.IsOfficialCumul != nil) {
			dest, err := requirePosition(ctx, repos, m.DestinationPositionID)
			if err != nil {
				return nil, err
			}
			person, err := e.directory.Resolve(ctx, repos, m.PersonnelID, false)
			if err != nil {
				return nil, err
			}
			if err := e.checkDestination(person, dest, m.IsOfficialCumul); err != nil {
				return nil, err
			}
		}
		if err := checkCumulType(m.IsOfficialCumul, m.Type); err != nil {
			return nil, err
		}
		if in.SourceStructureID != nil {
			if err := requireStructure(ctx, repos, in.SourceStructureID); err != nil {
				return nil, err
			}
			m.SourceStructureID = in.SourceStructureID
			changed["source_structure_id"] = *in.SourceStructureID
		}
		if in.DestinationStructureID != nil {
			if err := requireStructure(ctx, repos, in.DestinationStructureID); err != nil {
				return nil, err
			}
			m.DestinationStructureID = in.DestinationStructureID
			changed["destination_structure_id"] = *in.DestinationStructureID
		}
		if in.EffectiveDate != nil {
			m.EffectiveDate = in.EffectiveDate
			changed["effective_date"] = in.EffectiveDate.Format(time.DateOnly)
		}
		if in.Reason != nil {
			m.Reason = *in.Reason
			changed["reason"] = *in.Reason
		}
		if in.Decision != nil {
			m.Decision = in.Decision.ToEntity()
			changed["decision_number"] = in.Decision.Number
		}
		m.Touch(actor, now)
		if err := repos.Movements.Update(ctx, m); err != nil {
			return nil, err
		}
		return m, trail.Append(ctx, entity.EntityCareerMovement, m.ID, entity.AuditActionUpdate, actor, now, changed)
	})
}

// Approve PENDING → APPROVED; registra aprobador y fecha.
func (e *Engine) Approve(ctx context.Context, id string, in dto.TransitionRequest) (*entity.CareerMovement, error) {
	return e.transition(ctx, id, in.Version, entity.AuditActionApprove, nil, func(m *entity.CareerMovement, actor string, now time.Time) error {
		return domainmov.Approve(m, actor, now)
	})
}

// Reject PENDING/APPROVED → REJECTED.
func (e *Engine) Reject(ctx context.Context, id string, in dto.RejectMovementRequest) (*entity.CareerMovement, error) {
	return e.transition(ctx, id, in.Version, entity.AuditActionReject, map[string]any{"reason": in.Reason},
		func(m *entity.CareerMovement, actor string, now time.Time) error {
			return domainmov.Reject(m, in.Reason, actor, now)
		})
}

// Cancel PENDING/APPROVED → CANCELLED; falla si ya está ejecutado o anulado.
func (e *Engine) Cancel(ctx context.Context, id string, in dto.TransitionRequest) (*entity.CareerMovement, error) {
	return e.transition(ctx, id, in.Version, entity.AuditActionCancel, nil, func(m *entity.CareerMovement, actor string, now time.Time) error {
		return domainmov.Cancel(m, actor, now)
	})
}

// Delete borrado lógico. Distinto de la anulación: el movimiento desaparece de las consultas.
func (e *Engine) Delete(ctx context.Context, id string, in dto.TransitionRequest) error {
	_, err := e.transition(ctx, id, in.Version, entity.AuditActionDelete, nil, func(m *entity.CareerMovement, actor string, now time.Time) error {
		if err := domainmov.EnsureMutable(m); err != nil {
			return err
		}
		m.MarkDeleted(actor, now)
		return nil
	})
	return err
}

func (e *Engine) transition(
	ctx context.Context,
	id string,
	expected *int64,
	action entity.AuditAction,
	payload map[string]any,
	apply func(m *entity.CareerMovement, actor string, now time.Time) error,
) (*entity.CareerMovement, error) {
	return e.unit(ctx, action, func(repos ports.Repositories, trail *audit.Trail, actor string, now time.Time) (*entity.CareerMovement, error) {
		m, err := loadMovement(ctx, repos, id)
		if err != nil {
			return nil, err
		}
		from := m.Status
		if err := apply(m, actor, now); err != nil {
			return nil, err
		}
		if err := checkVersion(m, expected); err != nil {
			return nil, err
		}
		if err := repos.Movements.Update(ctx, m); err != nil {
			return nil, err
		}
		if payload == nil {
			payload = map[string]any{}
		}
		payload["from"] = string(from)
		payload["to"] = string(m.Status)
		return m, trail.Append(ctx, entity.EntityCareerMovement, m.ID, action, actor, now, payload)
	})
}

// Get obtiene un movimiento no borrado.
func (e *Engine) Get(ctx context.Context, id string) (*entity.CareerMovement, error) {
	var out *entity.CareerMovement
	err := e.tx.Run(ctx, func(repos ports.Repositories) error {
		m, err := repos.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NewNotFound(entity.EntityCareerMovement, id)
		}
		out = m
		return nil
	})
	return out, err
}

// List lista movimientos no borrados según los filtros.
func (e *Engine) List(ctx context.Context, q dto.ListMovementsQuery) ([]*entity.CareerMovement, int, error) {
	q.DefaultPage()
	filter := repository.MovementFilter{PersonnelID: q.PersonnelID, Limit: q.Limit, Offset: q.Offset}
	if q.Status != "" {
		st, err := entity.ParseMovementStatus(q.Status)
		if err != nil {
			return nil, 0, domain.NewInvalidOperation("%s", err.Error())
		}
		filter.Status = &st
	}
	if q.Type != "" {
		t, err := entity.ParseMovementType(q.Type)
		if err != nil {
			return nil, 0, domain.NewInvalidOperation("%s", err.Error())
		}
		filter.Type = &t
	}
	var (
		list  []*entity.CareerMovement
		total int
	)
	err := e.tx.Run(ctx, func(repos ports.Repositories) error {
		var err error
		list, total, err = repos.Movements.List(ctx, filter)
		return err
	})
	return list, total, err
}

// AuditTrail entradas de bitácora de un movimiento, para consulta de trazabilidad.
func (e *Engine) AuditTrail(ctx context.Context, id string) ([]*entity.AuditLog, error) {
	var out []*entity.AuditLog
	err := e.tx.Run(ctx, func(repos ports.Repositories) error {
		var err error
		out, err = repos.Audit.ListByEntity(ctx, entity.EntityCareerMovement, id)
		return err
	})
	return out, err
}
