package memory

import (
	"context"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
	"github.com/jhoicas/Personal-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo bitácora en memoria (solo inserción).
type AuditLogRepo struct{ base }

func (r *AuditLogRepo) Append(_ context.Context, entry *entity.AuditLog) error {
	return r.with(func(st *state) error {
		st.audit = append(st.audit, copyAudit(entry))
		return nil
	})
}

func (r *AuditLogRepo) ListByEntity(_ context.Context, entityType, entityID string) ([]*entity.AuditLog, error) {
	var list []*entity.AuditLog
	err := r.with(func(st *state) error {
		for _, a := range st.audit {
			if a.EntityType == entityType && a.EntityID == entityID {
				list = append(list, copyAudit(a))
			}
		}
		return nil
	})
	return list, err
}
