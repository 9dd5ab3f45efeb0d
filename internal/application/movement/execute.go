package movement

import (
	"context"
	"time"

	"github.com/jhoicas/Personal-api/internal/application/audit"
	"github.com/jhoicas/Personal-api/internal/application/dto"
	"github.com/jhoicas/Personal-api/internal/application/history"
	"github.com/jhoicas/Personal-api/internal/application/ports"
	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
	domainmov "github.com/jhoicas/Personal-api/internal/domain/movement"
)

// Execute APPROVED → EXECUTED y aplica los efectos del movimiento en la misma transacción:
// puestos liberados/ocupados con sus contadores, referencia del personal, historial y bitácora.
// Si la transición es ilegal no se toca ninguna otra entidad.
func (e *Engine) Execute(ctx context.Context, id string, in dto.TransitionRequest) (*entity.CareerMovement, error) {
	return e.unit(ctx, entity.AuditActionExecute, func(repos ports.Repositories, trail *audit.Trail, actor string, now time.Time) (*entity.CareerMovement, error) {
		m, err := loadMovement(ctx, repos, id)
		if err != nil {
			return nil, err
		}
		if err := domainmov.Execute(m, actor, now); err != nil {
			return nil, err
		}
		if err := checkVersion(m, in.Version); err != nil {
			return nil, err
		}
		person, err := e.directory.Resolve(ctx, repos, m.PersonnelID, true)
		if err != nil {
			return nil, err
		}
		day := domainmov.EffectiveDay(m, now)
		fx := &effects{e: e, ctx: ctx, repos: repos, trail: trail, actor: actor, now: now, m: m, person: person}

		if m.Type.IsExit() {
			err = fx.exit(day)
		} else {
			err = fx.placement(day)
		}
		if err != nil {
			return nil, err
		}

		person.Touch(actor, now)
		if err := repos.Personnel.Update(ctx, person); err != nil {
			return nil, err
		}
		if err := repos.Movements.Update(ctx, m); err != nil {
			return nil, err
		}
		return m, trail.Append(ctx, entity.EntityCareerMovement, m.ID, entity.AuditActionExecute, actor, now, map[string]any{
			"from":             string(entity.MovementStatusApproved),
			"to":               string(m.Status),
			"movement_type":    string(m.Type),
			"personnel_id":     person.ID,
			"personnel_status": string(person.Status),
			"effective_date":   day.Format(time.DateOnly),
		})
	})
}

// effects efectos de la ejecución de un movimiento sobre una transacción abierta.
type effects struct {
	e      *Engine
	ctx    context.Context
	repos  ports.Repositories
	trail  *audit.Trail
	actor  string
	now    time.Time
	m      *entity.CareerMovement
	person *entity.Personnel
}

// exit libera todos los puestos del personal, fija su nuevo estado y cierra el período abierto
// con el día anterior a la fecha de efecto como último día.
func (fx *effects) exit(day time.Time) error {
	held := make([]string, 0, 2+len(fx.person.CumulPositionIDs))
	if fx.m.SourcePositionID != nil {
		held = append(held, *fx.m.SourcePositionID)
	}
	if fx.person.CurrentPositionID != nil {
		held = append(held, *fx.person.CurrentPositionID)
	}
	held = append(held, fx.person.CumulPositionIDs...)

	seen := make(map[string]struct{}, len(held))
	for _, id := range held {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if err := fx.release(id); err != nil {
			return err
		}
	}
	fx.person.ClearPositions()
	if st, ok := fx.m.Type.ResultingPersonnelStatus(); ok {
		fx.person.Status = st
	}
	_, err := fx.e.ledger.CloseOpen(fx.ctx, fx.repos.History, fx.person.ID, day.AddDate(0, 0, -1), fx.now)
	return err
}

// placement asignación, traslado, promoción, comisión, interinato o reintegro.
func (fx *effects) placement(day time.Time) error {
	m, person := fx.m, fx.person
	if st, ok := m.Type.ResultingPersonnelStatus(); ok {
		person.Status = st
	}
	if person.Status != entity.PersonnelStatusActive {
		return domain.NewInvalidOperation("el personal %s no está activo (estado %s)", person.ID, person.Status)
	}

	// Un cumul no libera nada: el puesto de origen sigue ocupado.
	var released *string
	if !m.IsOfficialCumul {
		released = m.SourcePositionID
		if released == nil && m.DestinationPositionID != nil && person.CurrentPositionID != nil {
			cur := *person.CurrentPositionID
			released = &cur
		}
	}
	if released != nil {
		if err := fx.release(*released); err != nil {
			return err
		}
		person.DropPosition(*released)
	}

	newStructure := m.DestinationStructureID
	if m.DestinationPositionID != nil {
		if !m.IsOfficialCumul && person.HasCurrentPosition() {
			return domain.NewInvalidOperation("%s", MsgCumulAuthorizationRequired)
		}
		dest, err := fx.e.registry.Resolve(fx.ctx, fx.repos, *m.DestinationPositionID)
		if err != nil {
			return err
		}
		if err := fx.e.registry.Assign(fx.ctx, fx.repos, dest, person.ID, m.IsOfficialCumul, fx.actor, fx.now); err != nil {
			return err
		}
		if err := fx.trail.Append(fx.ctx, entity.EntityPosition, dest.ID, entity.AuditActionAssign, fx.actor, fx.now, map[string]any{
			"personnel_id": person.ID,
			"movement_id":  m.ID,
			"cumul":        m.IsOfficialCumul,
		}); err != nil {
			return err
		}
		if m.IsOfficialCumul {
			person.CumulAuthorized = true
		}
		person.TakePosition(dest.ID, m.IsOfficialCumul)
		if newStructure == nil {
			sid := dest.StructureID
			newStructure = &sid
		}
	}
	if newStructure != nil {
		sid := *newStructure
		person.StructureID = &sid
	}

	// Sin puesto destino (p. ej. promoción en el mismo puesto) el nuevo período sigue en el puesto vigente.
	oldPosition, newPosition := released, m.DestinationPositionID
	if newPosition == nil {
		newPosition = clonePtr(person.CurrentPositionID)
		if oldPosition == nil {
			oldPosition = clonePtr(person.CurrentPositionID)
		}
	}
	if newStructure == nil {
		newStructure = clonePtr(person.StructureID)
	}

	oldStructure := m.SourceStructureID
	_, err := fx.e.ledger.RecordAssignment(fx.ctx, fx.repos.History, history.RecordInput{
		PersonnelID:    person.ID,
		MovementID:     &m.ID,
		OldPositionID:  oldPosition,
		NewPositionID:  newPosition,
		OldStructureID: oldStructure,
		NewStructureID: newStructure,
		StartDate:      day,
		MovementType:   m.Type,
		Reason:         m.Reason,
		Decision:       m.Decision,
	}, fx.actor, fx.now)
	return err
}

// release retira al personal del puesto si lo ocupa; un puesto que ya no lo tiene se ignora.
func (fx *effects) release(positionID string) error {
	p, err := fx.e.registry.Resolve(fx.ctx, fx.repos, positionID)
	if err != nil {
		return err
	}
	if !p.IsOccupiedBy(fx.person.ID) {
		return nil
	}
	if err := fx.e.registry.Release(fx.ctx, fx.repos, p, fx.person.ID, fx.actor, fx.now); err != nil {
		return err
	}
	return fx.trail.Append(fx.ctx, entity.EntityPosition, p.ID, entity.AuditActionRelease, fx.actor, fx.now, map[string]any{
		"personnel_id": fx.person.ID,
		"movement_id":  fx.m.ID,
	})
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
