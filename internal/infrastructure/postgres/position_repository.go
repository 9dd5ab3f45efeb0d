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

var _ repository.PositionRepository = (*PositionRepo)(nil)

const positionColumns = `id, code, title, structure_id, status, primary_occupant_id, secondary_occupant_ids,
	assigned_at, version, ` + lifecycleColumns

// PositionRepo implementación de PositionRepository sobre PostgreSQL (usable con pool o tx).
type PositionRepo struct {
	q Querier
}

// NewPositionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPositionRepository(q Querier) *PositionRepo {
	return &PositionRepo{q: q}
}

// Create persiste un puesto nuevo. El código es único entre los puestos no borrados.
func (r *PositionRepo) Create(ctx context.Context, p *entity.Position) error {
	query := `INSERT INTO positions (` + positionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	args := append([]any{
		p.ID, p.Code, p.Title, p.StructureID, string(p.Status), p.PrimaryOccupantID,
		occupants(p.SecondaryOccupantIDs), p.AssignedAt, p.Version,
	}, lifecycleArgs(p.Lifecycle)...)
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicate(entity.EntityPosition, "code", p.Code)
		}
		return fmt.Errorf("insert position: %w", err)
	}
	return nil
}

// GetByID obtiene un puesto no borrado.
func (r *PositionRepo) GetByID(ctx context.Context, id string) (*entity.Position, error) {
	return r.one(ctx, `SELECT `+positionColumns+` FROM positions WHERE id = $1 AND `+notDeleted(""), id)
}

// GetForUpdate obtiene el puesto bloqueando la fila.
func (r *PositionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Position, error) {
	return r.one(ctx, `SELECT `+positionColumns+` FROM positions WHERE id = $1 AND `+notDeleted("")+` FOR UPDATE`, id)
}

// GetByCode obtiene un puesto no borrado por código.
func (r *PositionRepo) GetByCode(ctx context.Context, code string) (*entity.Position, error) {
	return r.one(ctx, `SELECT `+positionColumns+` FROM positions WHERE code = $1 AND `+notDeleted(""), code)
}

// ExistsByCode indica si hay un puesto no borrado con el código.
func (r *PositionRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM positions WHERE code = $1 AND `+notDeleted("")+`)`, code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists position: %w", err)
	}
	return exists, nil
}

// Update compare-and-swap sobre version.
func (r *PositionRepo) Update(ctx context.Context, p *entity.Position) error {
	query := `
		UPDATE positions SET title = $3, structure_id = $4, status = $5, primary_occupant_id = $6,
			secondary_occupant_ids = $7, assigned_at = $8, version = version + 1,
			updated_at = $9, updated_by = $10, deleted_at = $11, deleted_by = $12
		WHERE id = $1 AND version = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Version, p.Title, p.StructureID, string(p.Status), p.PrimaryOccupantID,
		occupants(p.SecondaryOccupantIDs), p.AssignedAt, p.UpdatedAt, p.UpdatedBy, p.DeletedAt, p.DeletedBy,
	)
	if err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewConcurrencyConflict(entity.EntityPosition, p.ID, p.Version)
	}
	p.Version++
	return nil
}

// ListByStructure lista los puestos de una estructura ordenados por código.
func (r *PositionRepo) ListByStructure(ctx context.Context, structureID string, limit, offset int) ([]*entity.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM positions
		WHERE structure_id = $1 AND ` + notDeleted("") + ` ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, structureID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountByStructure recuenta desde la tabla; los puestos suprimidos no cuentan en el total.
func (r *PositionRepo) CountByStructure(ctx context.Context, structureID string) (entity.PositionCounters, error) {
	var c entity.PositionCounters
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status <> 'ABOLISHED'),
			COUNT(*) FILTER (WHERE status = 'OCCUPIED'),
			COUNT(*) FILTER (WHERE status = 'VACANT')
		FROM positions WHERE structure_id = $1 AND ` + notDeleted("")
	if err := r.q.QueryRow(ctx, query, structureID).Scan(&c.Total, &c.Occupied, &c.Vacant); err != nil {
		return c, fmt.Errorf("count positions: %w", err)
	}
	return c, nil
}

func (r *PositionRepo) one(ctx context.Context, query string, args ...any) (*entity.Position, error) {
	p, err := scanPosition(r.q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func scanPosition(row rowScanner) (*entity.Position, error) {
	var (
		p      entity.Position
		status string
	)
	dest := append([]any{
		&p.ID, &p.Code, &p.Title, &p.StructureID, &status, &p.PrimaryOccupantID,
		&p.SecondaryOccupantIDs, &p.AssignedAt, &p.Version,
	}, lifecycleDest(&p.Lifecycle)...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan position: %w", err)
	}
	st, err := strictEnum("positions.status", status, entity.ParsePositionStatus)
	if err != nil {
		return nil, err
	}
	p.Status = st
	return &p, nil
}

// occupants nunca NULL en la columna.
func occupants(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
