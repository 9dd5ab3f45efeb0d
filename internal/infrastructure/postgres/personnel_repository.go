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

var _ repository.PersonnelRepository = (*PersonnelRepo)(nil)

const personnelColumns = `id, registration_number, first_name, last_name, status, current_position_id,
	cumul_position_ids, structure_id, cumul_authorized, version, ` + lifecycleColumns

// PersonnelRepo personal sobre PostgreSQL.
type PersonnelRepo struct {
	q Querier
}

// NewPersonnelRepository construye el adaptador.
func NewPersonnelRepository(q Querier) *PersonnelRepo {
	return &PersonnelRepo{q: q}
}

// Create persiste un personal. La matrícula, si existe, es única.
func (r *PersonnelRepo) Create(ctx context.Context, p *entity.Personnel) error {
	query := `INSERT INTO personnel (` + personnelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	args := append([]any{
		p.ID, p.RegistrationNumber, p.FirstName, p.LastName, string(p.Status), p.CurrentPositionID,
		occupants(p.CumulPositionIDs), p.StructureID, p.CumulAuthorized, p.Version,
	}, lifecycleArgs(p.Lifecycle)...)
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicate(entity.EntityPersonnel, "registration_number", textOrEmpty(p.RegistrationNumber))
		}
		return fmt.Errorf("insert personnel: %w", err)
	}
	return nil
}

// GetByID obtiene un personal no borrado.
func (r *PersonnelRepo) GetByID(ctx context.Context, id string) (*entity.Personnel, error) {
	return r.one(ctx, `SELECT `+personnelColumns+` FROM personnel WHERE id = $1 AND `+notDeleted(""), id)
}

// GetForUpdate obtiene el personal bloqueando la fila.
func (r *PersonnelRepo) GetForUpdate(ctx context.Context, id string) (*entity.Personnel, error) {
	return r.one(ctx, `SELECT `+personnelColumns+` FROM personnel WHERE id = $1 AND `+notDeleted("")+` FOR UPDATE`, id)
}

// Update compare-and-swap sobre version.
func (r *PersonnelRepo) Update(ctx context.Context, p *entity.Personnel) error {
	query := `
		UPDATE personnel SET registration_number = $3, first_name = $4, last_name = $5, status = $6,
			current_position_id = $7, cumul_position_ids = $8, structure_id = $9, cumul_authorized = $10,
			version = version + 1, updated_at = $11, updated_by = $12, deleted_at = $13, deleted_by = $14
		WHERE id = $1 AND version = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Version, p.RegistrationNumber, p.FirstName, p.LastName, string(p.Status), p.CurrentPositionID,
		occupants(p.CumulPositionIDs), p.StructureID, p.CumulAuthorized, p.UpdatedAt, p.UpdatedBy, p.DeletedAt, p.DeletedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicate(entity.EntityPersonnel, "registration_number", textOrEmpty(p.RegistrationNumber))
		}
		return fmt.Errorf("update personnel: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewConcurrencyConflict(entity.EntityPersonnel, p.ID, p.Version)
	}
	p.Version++
	return nil
}

func (r *PersonnelRepo) one(ctx context.Context, query string, args ...any) (*entity.Personnel, error) {
	var (
		p      entity.Personnel
		status string
	)
	dest := append([]any{
		&p.ID, &p.RegistrationNumber, &p.FirstName, &p.LastName, &status, &p.CurrentPositionID,
		&p.CumulPositionIDs, &p.StructureID, &p.CumulAuthorized, &p.Version,
	}, lifecycleDest(&p.Lifecycle)...)
	if err := r.q.QueryRow(ctx, query, args...).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get personnel: %w", err)
	}
	st, err := strictEnum("personnel.status", status, entity.ParsePersonnelStatus)
	if err != nil {
		return nil, err
	}
	p.Status = st
	return &p, nil
}
