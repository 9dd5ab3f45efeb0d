// Package audit implementa la bitácora de acciones: un sumidero de solo inserción que ninguna regla
// de negocio consulta. La escritura ocurre en la misma transacción que el cambio de estado.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
	"github.com/jhoicas/Personal-api/internal/domain/repository"
)

// Trail acumula las entradas escritas durante una unidad de trabajo para difundirlas tras el Commit.
type Trail struct {
	repo    repository.AuditLogRepository
	entries []*entity.AuditLog
}

// NewTrail construye el registro atado al repositorio de la transacción en curso.
func NewTrail(repo repository.AuditLogRepository) *Trail {
	return &Trail{repo: repo}
}

// Append inserta una entrada en la bitácora.
func (t *Trail) Append(
	ctx context.Context,
	entityType, entityID string,
	action entity.AuditAction,
	actor string,
	timestamp time.Time,
	payload map[string]any,
) error {
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	entry := &entity.AuditLog{
		ID:         uuid.New().String(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Actor:      actor,
		Timestamp:  timestamp,
		Payload:    payload,
	}
	if err := t.repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("append audit %s %s: %w", entityType, action, err)
	}
	t.entries = append(t.entries, entry)
	return nil
}

// Entries entradas escritas hasta el momento.
func (t *Trail) Entries() []*entity.AuditLog {
	return t.entries
}
