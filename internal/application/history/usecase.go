package history

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Personal-api/internal/application/audit"
	"github.com/jhoicas/Personal-api/internal/application/dto"
	"github.com/jhoicas/Personal-api/internal/application/ports"
	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// UseCase operaciones directas sobre el historial, cada una en su propia transacción.
type UseCase struct {
	tx       ports.TxRunner
	identity ports.IdentityProvider
	ledger   *Ledger
	unit     *audit.Unit
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner, identity ports.IdentityProvider) *UseCase {
	return &UseCase{tx: tx, identity: identity, ledger: NewLedger(), unit: audit.NewUnit(tx), now: func() time.Time { return time.Now().UTC() }}
}

// WithPublisher difunde tras el Commit las entradas de bitácora del historial.
func (uc *UseCase) WithPublisher(p ports.AuditPublisher, log zerolog.Logger) *UseCase {
	uc.unit.WithPublisher(p, log)
	return uc
}

// RecordAssignment registro directo de un período (sin movimiento asociado).
func (uc *UseCase) RecordAssignment(ctx context.Context, personnelID string, in dto.RecordAssignmentRequest) (*dto.AssignmentHistoryResponse, error) {
	actor, err := uc.identity.CurrentActor(ctx)
	if err != nil {
		return nil, err
	}
	movementType, err := entity.ParseMovementType(in.MovementType)
	if err != nil {
		return nil, domain.NewInvalidOperation("%s", err.Error())
	}
	now := uc.now()
	var out *entity.AssignmentHistory
	err = uc.unit.Run(ctx, func(repos ports.Repositories, trail *audit.Trail) error {
		p, err := repos.Personnel.GetByID(ctx, personnelID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFound(entity.EntityPersonnel, personnelID)
		}
		out, err = uc.ledger.RecordAssignment(ctx, repos.History, RecordInput{
			PersonnelID:    personnelID,
			OldPositionID:  in.OldPositionID,
			NewPositionID:  in.NewPositionID,
			OldStructureID: in.OldStructureID,
			NewStructureID: in.NewStructureID,
			StartDate:      in.StartDate,
			MovementType:   movementType,
			Reason:         in.Reason,
			Decision:       in.Decision.ToEntity(),
		}, actor, now)
		if err != nil {
			return err
		}
		return trail.Append(ctx, entity.EntityAssignmentHistory, out.ID, entity.AuditActionCreate, actor, now,
			map[string]any{"personnel_id": personnelID, "start_date": out.StartDate.Format(time.DateOnly)})
	})
	if err != nil {
		return nil, err
	}
	return dto.ToAssignmentHistoryResponse(out), nil
}

// EndAssignment cierra explícitamente un período.
func (uc *UseCase) EndAssignment(ctx context.Context, id string, in dto.EndAssignmentRequest) (*dto.AssignmentHistoryResponse, error) {
	return uc.mutate(ctx, id, entity.AuditActionUpdate, map[string]any{"end_date": in.EndDate.Format(time.DateOnly)},
		func(repos ports.Repositories, now time.Time) (*entity.AssignmentHistory, error) {
			return uc.ledger.EndAssignment(ctx, repos.History, id, in.EndDate, now)
		})
}

// CancelAssignment anula un período.
func (uc *UseCase) CancelAssignment(ctx context.Context, id string, in dto.CancelAssignmentRequest) (*dto.AssignmentHistoryResponse, error) {
	return uc.mutate(ctx, id, entity.AuditActionCancel, map[string]any{"reason": in.Reason},
		func(repos ports.Repositories, now time.Time) (*entity.AssignmentHistory, error) {
			return uc.ledger.CancelAssignment(ctx, repos.History, id, in.Reason, now)
		})
}

// AttachDecisionDocument adjunta los metadatos del acto administrativo.
func (uc *UseCase) AttachDecisionDocument(ctx context.Context, id string, in dto.DecisionDocumentDTO) (*dto.AssignmentHistoryResponse, error) {
	return uc.mutate(ctx, id, entity.AuditActionUpdate, map[string]any{"decision_number": in.Number},
		func(repos ports.Repositories, now time.Time) (*entity.AssignmentHistory, error) {
			return uc.ledger.AttachDecisionDocument(ctx, repos.History, id, in.ToEntity(), now)
		})
}

// ListByPersonnel historial completo de un personal ordenado por fecha de inicio.
func (uc *UseCase) ListByPersonnel(ctx context.Context, personnelID string) ([]*dto.AssignmentHistoryResponse, error) {
	var list []*entity.AssignmentHistory
	err := uc.tx.Run(ctx, func(repos ports.Repositories) error {
		var err error
		list, err = repos.History.ListByPersonnel(ctx, personnelID)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AssignmentHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.ToAssignmentHistoryResponse(h))
	}
	return out, nil
}

// CurrentAssignment período abierto del personal, o NotFound si no tiene.
func (uc *UseCase) CurrentAssignment(ctx context.Context, personnelID string) (*dto.AssignmentHistoryResponse, error) {
	var out *entity.AssignmentHistory
	err := uc.tx.Run(ctx, func(repos ports.Repositories) error {
		h, err := repos.History.FindOpenByPersonnel(ctx, personnelID)
		if err != nil {
			return err
		}
		if h == nil {
			return domain.NewNotFound(entity.EntityAssignmentHistory, personnelID)
		}
		out = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToAssignmentHistoryResponse(out), nil
}

func (uc *UseCase) mutate(
	ctx context.Context,
	id string,
	action entity.AuditAction,
	payload map[string]any,
	fn func(repos ports.Repositories, now time.Time) (*entity.AssignmentHistory, error),
) (*dto.AssignmentHistoryResponse, error) {
	actor, err := uc.identity.CurrentActor(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	var out *entity.AssignmentHistory
	err = uc.unit.Run(ctx, func(repos ports.Repositories, trail *audit.Trail) error {
		var err error
		if out, err = fn(repos, now); err != nil {
			return err
		}
		return trail.Append(ctx, entity.EntityAssignmentHistory, id, action, actor, now, payload)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToAssignmentHistoryResponse(out), nil
}
