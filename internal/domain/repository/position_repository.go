package repository

import (
	"context"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// PositionRepository define el puerto de persistencia para Position (DIP).
// GetByID/GetByCode devuelven (nil, nil) si no existe o está borrado lógicamente.
type PositionRepository interface {
	Create(ctx context.Context, position *entity.Position) error
	GetByID(ctx context.Context, id string) (*entity.Position, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Position, error)
	GetByCode(ctx context.Context, code string) (*entity.Position, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	// Update escribe solo si position.Version coincide con la almacenada; incrementa Version.
	Update(ctx context.Context, position *entity.Position) error
	ListByStructure(ctx context.Context, structureID string, limit, offset int) ([]*entity.Position, error)
	// CountByStructure recuenta los puestos vigentes de la estructura.
	CountByStructure(ctx context.Context, structureID string) (entity.PositionCounters, error)
}
