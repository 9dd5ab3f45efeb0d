package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
	"github.com/jhoicas/Personal-api/internal/domain/repository"
)

var _ repository.AssignmentHistoryRepository = (*AssignmentHistoryRepo)(nil)

const historyColumns = `id, personnel_id, movement_id, old_position_id, new_position_id, old_structure_id,
	new_structure_id, movement_type, start_date, end_date, status, reason, cancellation_reason,
	decision_number, decision_date, decision_reference, version, created_at, created_by, updated_at`

// AssignmentHistoryRepo historial de asignaciones sobre PostgreSQL. Sin borrado.
type AssignmentHistoryRepo struct {
	q Querier
}

// NewAssignmentHistoryRepository construye el adaptador.
func NewAssignmentHistoryRepository(q Querier) *AssignmentHistoryRepo {
	return &AssignmentHistoryRepo{q: q}
}

// Create persiste un período. El índice único parcial sobre (personnel_id) WHERE end_date IS NULL
// respalda en la base la regla de un único período abierto.
func (r *AssignmentHistoryRepo) Create(ctx context.Context, h *entity.AssignmentHistory) error {
	query := `INSERT INTO assignment_history (` + historyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.PersonnelID, h.MovementID, h.OldPositionID, h.NewPositionID, h.OldStructureID,
		h.NewStructureID, string(h.MovementType), h.StartDate, h.EndDate, string(h.Status), h.Reason,
		h.CancellationReason, nullableText(h.Decision.Number), h.Decision.Date, nullableText(h.Decision.Reference),
		h.Version, h.CreatedAt, h.CreatedBy, h.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicate(entity.EntityAssignmentHistory, "personnel_id", h.PersonnelID)
		}
		return fmt.Errorf("insert assignment history: %w", err)
	}
	return nil
}

// GetByID obtiene un período.
func (r *AssignmentHistoryRepo) GetByID(ctx context.Context, id string) (*entity.AssignmentHistory, error) {
	return r.one(ctx, `SELECT `+historyColumns+` FROM assignment_history WHERE id = $1 FOR UPDATE`, id)
}

// FindOpenByPersonnel período vigente del personal, bloqueado.
func (r *AssignmentHistoryRepo) FindOpenByPersonnel(ctx context.Context, personnelID string) (*entity.AssignmentHistory, error) {
	return r.one(ctx, `SELECT `+historyColumns+` FROM assignment_history
		WHERE personnel_id = $1 AND end_date IS NULL AND status = 'ACTIVE' FOR UPDATE`, personnelID)
}

// Update compare-and-swap sobre version.
func (r *AssignmentHistoryRepo) Update(ctx context.Context, h *entity.AssignmentHistory) error {
	query := `
		UPDATE assignment_history SET end_date = $3, status = $4, cancellation_reason = $5,
			decision_number = $6, decision_date = $7, decision_reference = $8, updated_at = $9,
			version = version + 1
		WHERE id = $1 AND version = $2`
	cmd, err := r.q.Exec(ctx, query, h.ID, h.Version, h.EndDate, string(h.Status), h.CancellationReason,
		nullableText(h.Decision.Number), h.Decision.Date, nullableText(h.Decision.Reference), h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update assignment history: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewConcurrencyConflict(entity.EntityAssignmentHistory, h.ID, h.Version)
	}
	h.Version++
	return nil
}

// ListByPersonnel historial completo ordenado por fecha de inicio.
func (r *AssignmentHistoryRepo) ListByPersonnel(ctx context.Context, personnelID string) ([]*entity.AssignmentHistory, error) {
	rows, err := r.q.Query(ctx, `SELECT `+historyColumns+` FROM assignment_history
		WHERE personnel_id = $1 ORDER BY start_date, created_at`, personnelID)
	if err != nil {
		return nil, fmt.Errorf("list assignment history: %w", err)
	}
	defer rows.Close()
	var list []*entity.AssignmentHistory
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

func (r *AssignmentHistoryRepo) one(ctx context.Context, query string, args ...any) (*entity.AssignmentHistory, error) {
	h, err := scanHistory(r.q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return h, err
}

func scanHistory(row rowScanner) (*entity.AssignmentHistory, error) {
	var (
		h                        entity.AssignmentHistory
		movementType, status     string
		decisionNum, decisionRef *string
	)
	err := row.Scan(&h.ID, &h.PersonnelID, &h.MovementID, &h.OldPositionID, &h.NewPositionID, &h.OldStructureID,
		&h.NewStructureID, &movementType, &h.StartDate, &h.EndDate, &status, &h.Reason, &h.CancellationReason,
		&decisionNum, &h.Decision.Date, &decisionRef, &h.Version, &h.CreatedAt, &h.CreatedBy, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan assignment history: %w", err)
	}
	if h.MovementType, err = strictEnum("assignment_history.movement_type", movementType, entity.ParseMovementType); err != nil {
		return nil, err
	}
	if h.Status, err = strictEnum("assignment_history.status", status, entity.ParseHistoryStatus); err != nil {
		return nil, err
	}
	h.Decision.Number = textOrEmpty(decisionNum)
	h.Decision.Reference = textOrEmpty(decisionRef)
	return &h, nil
}
