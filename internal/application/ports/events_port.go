package ports

import (
	"context"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// AuditPublisher difunde las entradas de bitácora ya confirmadas (p. ej. a Kafka).
// Se invoca después del Commit; un fallo no revierte la operación.
type AuditPublisher interface {
	Publish(ctx context.Context, entries []*entity.AuditLog) error
}

// TransitionRecorder métricas de transiciones del motor de movimientos.
type TransitionRecorder interface {
	Transition(action entity.AuditAction)
	Failure(action entity.AuditAction, reason string)
}

// NopTransitionRecorder no registra nada.
type NopTransitionRecorder struct{}

func (NopTransitionRecorder) Transition(entity.AuditAction)      {}
func (NopTransitionRecorder) Failure(entity.AuditAction, string) {}
