package repository

import (
	"context"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// MovementFilter criterios de listado de movimientos. Los borrados lógicos nunca se devuelven.
type MovementFilter struct {
	PersonnelID string
	Status      *entity.MovementStatus
	Type        *entity.MovementType
	Limit       int
	Offset      int
}

// CareerMovementRepository define el puerto de persistencia para CareerMovement.
// GetByID y GetForUpdate ignoran los movimientos borrados lógicamente.
type CareerMovementRepository interface {
	Create(ctx context.Context, movement *entity.CareerMovement) error
	GetByID(ctx context.Context, id string) (*entity.CareerMovement, error)
	GetForUpdate(ctx context.Context, id string) (*entity.CareerMovement, error)
	Update(ctx context.Context, movement *entity.CareerMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.CareerMovement, int, error)
}
