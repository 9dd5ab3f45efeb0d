package repository

import (
	"context"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// AuditLogRepository bitácora de solo inserción. No hay Update ni Delete.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *entity.AuditLog) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*entity.AuditLog, error)
}
