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

var _ repository.StructureRepository = (*StructureRepo)(nil)

// StructureRepo estructuras organizacionales. occupancy_rate es NUMERIC (codec shopspring registrado en el pool).
type StructureRepo struct {
	q Querier
}

// NewStructureRepository construye el adaptador.
func NewStructureRepository(q Querier) *StructureRepo {
	return &StructureRepo{q: q}
}

// Create persiste una estructura.
func (r *StructureRepo) Create(ctx context.Context, s *entity.Structure) error {
	query := `
		INSERT INTO structures (id, code, name, parent_id, total_positions, occupied_positions, vacant_positions,
			occupancy_rate, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Code, s.Name, s.ParentID, s.TotalPositions, s.OccupiedPositions,
		s.VacantPositions, s.OccupancyRate, s.Version, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicate(entity.EntityStructure, "code", s.Code)
		}
		return fmt.Errorf("insert structure: %w", err)
	}
	return nil
}

// GetByID obtiene una estructura.
func (r *StructureRepo) GetByID(ctx context.Context, id string) (*entity.Structure, error) {
	query := `
		SELECT id, code, name, parent_id, total_positions, occupied_positions, vacant_positions,
			occupancy_rate, version, created_at, updated_at
		FROM structures WHERE id = $1`
	var s entity.Structure
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Code, &s.Name, &s.ParentID, &s.TotalPositions,
		&s.OccupiedPositions, &s.VacantPositions, &s.OccupancyRate, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get structure: %w", err)
	}
	return &s, nil
}

// UpdateCounters persiste el reconteo (compare-and-swap sobre version).
func (r *StructureRepo) UpdateCounters(ctx context.Context, s *entity.Structure) error {
	query := `
		UPDATE structures SET total_positions = $3, occupied_positions = $4, vacant_positions = $5,
			occupancy_rate = $6, updated_at = $7, version = version + 1
		WHERE id = $1 AND version = $2`
	cmd, err := r.q.Exec(ctx, query, s.ID, s.Version, s.TotalPositions, s.OccupiedPositions,
		s.VacantPositions, s.OccupancyRate, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update structure counters: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewConcurrencyConflict(entity.EntityStructure, s.ID, s.Version)
	}
	s.Version++
	return nil
}
