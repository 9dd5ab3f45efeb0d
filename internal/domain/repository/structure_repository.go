package repository

import (
	"context"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// StructureRepository define el puerto de persistencia para Structure.
type StructureRepository interface {
	Create(ctx context.Context, structure *entity.Structure) error
	GetByID(ctx context.Context, id string) (*entity.Structure, error)
	// UpdateCounters persiste los contadores desnormalizados (compare-and-swap sobre Version).
	UpdateCounters(ctx context.Context, structure *entity.Structure) error
}
