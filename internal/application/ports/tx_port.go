package ports

import (
	"context"

	"github.com/jhoicas/Personal-api/internal/domain/repository"
)

// Repositories repositorios atados a una misma transacción.
type Repositories struct {
	Positions  repository.PositionRepository
	Personnel  repository.PersonnelRepository
	Structures repository.StructureRepository
	Movements  repository.CareerMovementRepository
	History    repository.AssignmentHistoryRepository
	Audit      repository.AuditLogRepository
}

// TxRunner ejecuta fn dentro de una única unidad de trabajo: si fn devuelve error no sobrevive
// ninguna escritura (Rollback); si no, todas se confirman juntas (Commit).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}
