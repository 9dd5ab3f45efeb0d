package repository

import (
	"context"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// PersonnelRepository define el puerto de persistencia para Personnel.
type PersonnelRepository interface {
	Create(ctx context.Context, personnel *entity.Personnel) error
	GetByID(ctx context.Context, id string) (*entity.Personnel, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Personnel, error)
	Update(ctx context.Context, personnel *entity.Personnel) error
}
