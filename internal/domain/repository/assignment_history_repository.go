package repository

import (
	"context"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// AssignmentHistoryRepository define el puerto del historial de asignaciones. No existe borrado.
type AssignmentHistoryRepository interface {
	Create(ctx context.Context, history *entity.AssignmentHistory) error
	GetByID(ctx context.Context, id string) (*entity.AssignmentHistory, error)
	// FindOpenByPersonnel devuelve el período sin fecha de fin (bloqueado para update), o nil.
	FindOpenByPersonnel(ctx context.Context, personnelID string) (*entity.AssignmentHistory, error)
	Update(ctx context.Context, history *entity.AssignmentHistory) error
	ListByPersonnel(ctx context.Context, personnelID string) ([]*entity.AssignmentHistory, error)
}
