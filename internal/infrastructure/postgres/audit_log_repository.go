package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
	"github.com/jhoicas/Personal-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo bitácora de solo inserción; el payload se guarda como JSONB.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Append inserta una entrada.
func (r *AuditLogRepo) Append(ctx context.Context, a *entity.AuditLog) error {
	payload := a.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_logs (id, entity_type, entity_id, action, actor, "timestamp", payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.EntityType, a.EntityID, string(a.Action), a.Actor, a.Timestamp, payload)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByEntity entradas de una entidad en orden de inserción.
func (r *AuditLogRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]*entity.AuditLog, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, entity_type, entity_id, action, actor, "timestamp", payload
		FROM audit_logs WHERE entity_type = $1 AND entity_id = $2 ORDER BY seq`, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var (
			a      entity.AuditLog
			action string
		)
		if err := rows.Scan(&a.ID, &a.EntityType, &a.EntityID, &action, &a.Actor, &a.Timestamp, &a.Payload); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		a.Action = entity.AuditAction(action)
		list = append(list, &a)
	}
	return list, rows.Err()
}
