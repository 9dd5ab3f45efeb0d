package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
	"github.com/jhoicas/Personal-api/internal/domain/repository"
)

var _ repository.CareerMovementRepository = (*CareerMovementRepo)(nil)

const movementColumns = `id, personnel_id, source_position_id, destination_position_id, source_structure_id,
	destination_structure_id, movement_type, is_official_cumul, status, effective_date, reason,
	decision_number, decision_date, decision_reference, rejection_reason,
	approved_by, approved_at, executed_by, executed_at, version, ` + lifecycleColumns

// CareerMovementRepo movimientos de carrera sobre PostgreSQL.
type CareerMovementRepo struct {
	q Querier
}

// NewCareerMovementRepository construye el adaptador.
func NewCareerMovementRepository(q Querier) *CareerMovementRepo {
	return &CareerMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *CareerMovementRepo) Create(ctx context.Context, m *entity.CareerMovement) error {
	query := `INSERT INTO career_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26)`
	args := append(movementArgs(m), lifecycleArgs(m.Lifecycle)...)
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert career movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento no borrado.
func (r *CareerMovementRepo) GetByID(ctx context.Context, id string) (*entity.CareerMovement, error) {
	return r.one(ctx, `SELECT `+movementColumns+` FROM career_movements WHERE id = $1 AND `+notDeleted(""), id)
}

// GetForUpdate obtiene el movimiento bloqueando la fila.
func (r *CareerMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.CareerMovement, error) {
	return r.one(ctx, `SELECT `+movementColumns+` FROM career_movements WHERE id = $1 AND `+notDeleted("")+` FOR UPDATE`, id)
}

// Update compare-and-swap sobre version; reescribe todas las columnas mutables.
func (r *CareerMovementRepo) Update(ctx context.Context, m *entity.CareerMovement) error {
	query := `
		UPDATE career_movements SET source_position_id = $3, destination_position_id = $4,
			source_structure_id = $5, destination_structure_id = $6, movement_type = $7, is_official_cumul = $8,
			status = $9, effective_date = $10, reason = $11, decision_number = $12, decision_date = $13,
			decision_reference = $14, rejection_reason = $15, approved_by = $16, approved_at = $17,
			executed_by = $18, executed_at = $19, version = version + 1,
			updated_at = $20, updated_by = $21, deleted_at = $22, deleted_by = $23
		WHERE id = $1 AND version = $2`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.Version, m.SourcePositionID, m.DestinationPositionID, m.SourceStructureID, m.DestinationStructureID,
		string(m.Type), m.IsOfficialCumul, string(m.Status), m.EffectiveDate, m.Reason,
		nullableText(m.Decision.Number), m.Decision.Date, nullableText(m.Decision.Reference), m.RejectionReason,
		m.ApprovedBy, m.ApprovedAt, m.ExecutedBy, m.ExecutedAt,
		m.UpdatedAt, m.UpdatedBy, m.DeletedAt, m.DeletedBy,
	)
	if err != nil {
		return fmt.Errorf("update career movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewConcurrencyConflict(entity.EntityCareerMovement, m.ID, m.Version)
	}
	m.Version++
	return nil
}

// List filtra por personal, estado y tipo; devuelve la página y el total.
func (r *CareerMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.CareerMovement, int, error) {
	where := []string{notDeleted("")}
	var args []any
	if f.PersonnelID != "" {
		args = append(args, f.PersonnelID)
		where = append(where, fmt.Sprintf("personnel_id = $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Type != nil {
		args = append(args, string(*f.Type))
		where = append(where, fmt.Sprintf("movement_type = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM career_movements WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count career movements: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM career_movements WHERE %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		movementColumns, cond, len(args)+1, len(args)+2)
	rows, err := r.q.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list career movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.CareerMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

func (r *CareerMovementRepo) one(ctx context.Context, query string, args ...any) (*entity.CareerMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func movementArgs(m *entity.CareerMovement) []any {
	return []any{
		m.ID, m.PersonnelID, m.SourcePositionID, m.DestinationPositionID, m.SourceStructureID,
		m.DestinationStructureID, string(m.Type), m.IsOfficialCumul, string(m.Status), m.EffectiveDate, m.Reason,
		nullableText(m.Decision.Number), m.Decision.Date, nullableText(m.Decision.Reference), m.RejectionReason,
		m.ApprovedBy, m.ApprovedAt, m.ExecutedBy, m.ExecutedAt, m.Version,
	}
}

func scanMovement(row rowScanner) (*entity.CareerMovement, error) {
	var (
		m                        entity.CareerMovement
		movementType, status     string
		decisionNum, decisionRef *string
	)
	dest := append([]any{
		&m.ID, &m.PersonnelID, &m.SourcePositionID, &m.DestinationPositionID, &m.SourceStructureID,
		&m.DestinationStructureID, &movementType, &m.IsOfficialCumul, &status, &m.EffectiveDate, &m.Reason,
		&decisionNum, &m.Decision.Date, &decisionRef, &m.RejectionReason,
		&m.ApprovedBy, &m.ApprovedAt, &m.ExecutedBy, &m.ExecutedAt, &m.Version,
	}, lifecycleDest(&m.Lifecycle)...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan career movement: %w", err)
	}
	var err error
	if m.Type, err = strictEnum("career_movements.movement_type", movementType, entity.ParseMovementType); err != nil {
		return nil, err
	}
	if m.Status, err = strictEnum("career_movements.status", status, entity.ParseMovementStatus); err != nil {
		return nil, err
	}
	m.Decision.Number = textOrEmpty(decisionNum)
	m.Decision.Reference = textOrEmpty(decisionRef)
	return &m, nil
}
