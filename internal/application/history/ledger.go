// Package history lleva el historial de asignaciones: períodos de ocupación de un par puesto/estructura.
// Solo se abren, cierran o anulan registros; nunca se borran.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
	"github.com/jhoicas/Personal-api/internal/domain/repository"
)

// RecordInput datos de un nuevo período de asignación.
type RecordInput struct {
	PersonnelID    string
	MovementID     *string
	OldPositionID  *string
	NewPositionID  *string
	OldStructureID *string
	NewStructureID *string
	StartDate      time.Time
	MovementType   entity.MovementType
	Reason         string
	Decision       entity.DecisionDocument
}

// Ledger operaciones del historial dentro de una transacción ya abierta.
type Ledger struct{}

// NewLedger construye el historial.
func NewLedger() *Ledger {
	return &Ledger{}
}

// RecordAssignment cierra el período abierto del personal (fin = inicio del nuevo − 1 día, COMPLETED)
// y abre uno nuevo ACTIVE sin fecha de fin. Así hay como máximo un período abierto y los cerrados no se solapan.
func (l *Ledger) RecordAssignment(
	ctx context.Context,
	repo repository.AssignmentHistoryRepository,
	in RecordInput,
	actor string,
	now time.Time,
) (*entity.AssignmentHistory, error) {
	start := entity.Day(in.StartDate)
	open, err := repo.FindOpenByPersonnel(ctx, in.PersonnelID)
	if err != nil {
		return nil, err
	}
	previous, err := repo.ListByPersonnel(ctx, in.PersonnelID)
	if err != nil {
		return nil, err
	}
	for _, h := range previous {
		if h.Status == entity.HistoryStatusCancelled || h.IsOpen() {
			continue
		}
		if !h.EndDate.Before(start) {
			return nil, domain.NewInvalidOperation(
				"la fecha de inicio %s se solapa con el período %s cerrado el %s",
				start.Format(time.DateOnly), h.ID, h.EndDate.Format(time.DateOnly))
		}
	}
	if open != nil {
		if !start.After(open.StartDate) {
			return nil, domain.NewInvalidOperation(
				"la fecha de inicio %s debe ser posterior al inicio del período vigente %s",
				start.Format(time.DateOnly), open.StartDate.Format(time.DateOnly))
		}
		if err := l.close(ctx, repo, open, start.AddDate(0, 0, -1), now); err != nil {
			return nil, err
		}
	}
	h := &entity.AssignmentHistory{
		ID:             uuid.New().String(),
		PersonnelID:    in.PersonnelID,
		MovementID:     in.MovementID,
		OldPositionID:  in.OldPositionID,
		NewPositionID:  in.NewPositionID,
		OldStructureID: in.OldStructureID,
		NewStructureID: in.NewStructureID,
		MovementType:   in.MovementType,
		StartDate:      start,
		Status:         entity.HistoryStatusActive,
		Reason:         in.Reason,
		Decision:       in.Decision,
		CreatedAt:      now,
		CreatedBy:      actor,
		UpdatedAt:      now,
	}
	if err := repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// CloseOpen cierra el período abierto del personal con lastDay como último día, si existe.
// Un lastDay anterior al inicio del período se ajusta al inicio.
func (l *Ledger) CloseOpen(
	ctx context.Context,
	repo repository.AssignmentHistoryRepository,
	personnelID string,
	lastDay time.Time,
	now time.Time,
) (*entity.AssignmentHistory, error) {
	open, err := repo.FindOpenByPersonnel(ctx, personnelID)
	if err != nil || open == nil {
		return nil, err
	}
	end := entity.Day(lastDay)
	if end.Before(open.StartDate) {
		end = open.StartDate
	}
	if err := l.close(ctx, repo, open, end, now); err != nil {
		return nil, err
	}
	return open, nil
}

// EndAssignment cierre explícito de un período abierto.
func (l *Ledger) EndAssignment(
	ctx context.Context,
	repo repository.AssignmentHistoryRepository,
	id string,
	endDate time.Time,
	now time.Time,
) (*entity.AssignmentHistory, error) {
	h, err := l.resolve(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if !h.IsOpen() || h.Status != entity.HistoryStatusActive {
		return nil, domain.NewInvalidOperation("el período %s ya está cerrado", id)
	}
	end := entity.Day(endDate)
	if end.Before(h.StartDate) {
		return nil, domain.NewInvalidOperation("la fecha de fin %s es anterior al inicio %s",
			end.Format(time.DateOnly), h.StartDate.Format(time.DateOnly))
	}
	if err := l.close(ctx, repo, h, end, now); err != nil {
		return nil, err
	}
	return h, nil
}

// CancelAssignment anula un período (resultado distinto de COMPLETED: el período se invalida,
// no se sustituye). Un período anulado queda fuera de la verificación de solapamiento.
func (l *Ledger) CancelAssignment(
	ctx context.Context,
	repo repository.AssignmentHistoryRepository,
	id, reason string,
	now time.Time,
) (*entity.AssignmentHistory, error) {
	h, err := l.resolve(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if h.Status == entity.HistoryStatusCancelled {
		return nil, domain.NewInvalidOperation("el período %s ya está anulado", id)
	}
	if h.IsOpen() {
		end := h.StartDate
		h.EndDate = &end
	}
	h.Status = entity.HistoryStatusCancelled
	h.CancellationReason = reason
	h.UpdatedAt = now
	if err := repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// AttachDecisionDocument registra los metadatos del acto administrativo; no cambia el estado.
func (l *Ledger) AttachDecisionDocument(
	ctx context.Context,
	repo repository.AssignmentHistoryRepository,
	id string,
	doc entity.DecisionDocument,
	now time.Time,
) (*entity.AssignmentHistory, error) {
	h, err := l.resolve(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	h.Decision = doc
	h.UpdatedAt = now
	if err := repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (l *Ledger) close(ctx context.Context, repo repository.AssignmentHistoryRepository, h *entity.AssignmentHistory, end, now time.Time) error {
	h.EndDate = &end
	h.Status = entity.HistoryStatusCompleted
	h.UpdatedAt = now
	return repo.Update(ctx, h)
}

func (l *Ledger) resolve(ctx context.Context, repo repository.AssignmentHistoryRepository, id string) (*entity.AssignmentHistory, error) {
	h, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.NewNotFound(entity.EntityAssignmentHistory, id)
	}
	return h, nil
}

// CheckTimeline verifica las invariantes del historial de un personal: como máximo un período abierto
// y períodos cerrados sin solapamiento. Los períodos anulados no cuentan.
func CheckTimeline(records []*entity.AssignmentHistory) error {
	var live []*entity.AssignmentHistory
	open := 0
	for _, h := range records {
		if h.Status == entity.HistoryStatusCancelled {
			continue
		}
		if h.IsOpen() {
			open++
		}
		live = append(live, h)
	}
	if open > 1 {
		return domain.NewInvalidOperation("hay %d períodos abiertos", open)
	}
	for i := range live {
		for j := i + 1; j < len(live); j++ {
			if live[i].Overlaps(live[j]) {
				return domain.NewInvalidOperation("los períodos %s y %s se solapan", live[i].ID, live[j].ID)
			}
		}
	}
	return nil
}
