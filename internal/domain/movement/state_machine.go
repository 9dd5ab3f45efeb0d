// Package movement contiene las transiciones de estado de los movimientos de carrera.
// Es lógica pura: no persiste ni consulta repositorios.
package movement

import (
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// ErrIllegalState transición no permitida desde el estado actual.
var ErrIllegalState = errors.New("transición de estado ilegal")

func illegal(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalState, fmt.Sprintf(format, args...))
}

// EnsureMutable un movimiento ejecutado es inmutable (sin edición, anulación ni borrado).
func EnsureMutable(m *entity.CareerMovement) error {
	if m.Status == entity.MovementStatusExecuted {
		return illegal("un movimiento ejecutado es inmutable")
	}
	return nil
}

// Approve PENDING → APPROVED.
func Approve(m *entity.CareerMovement, actor string, now time.Time) error {
	if m.Status != entity.MovementStatusPending {
		return illegal("no se puede aprobar un movimiento en estado %s", m.Status)
	}
	m.Status = entity.MovementStatusApproved
	m.ApprovedBy = &actor
	m.ApprovedAt = &now
	m.Touch(actor, now)
	return nil
}

// Reject PENDING/APPROVED → REJECTED.
func Reject(m *entity.CareerMovement, reason, actor string, now time.Time) error {
	if m.Status != entity.MovementStatusPending && m.Status != entity.MovementStatusApproved {
		return illegal("no se puede rechazar un movimiento en estado %s", m.Status)
	}
	m.Status = entity.MovementStatusRejected
	m.RejectionReason = reason
	m.Touch(actor, now)
	return nil
}

// Execute APPROVED → EXECUTED. Solo cambia el estado; los efectos sobre puestos, personal
// e historial los aplica el motor dentro de la misma transacción.
func Execute(m *entity.CareerMovement, actor string, now time.Time) error {
	if m.Status != entity.MovementStatusApproved {
		return illegal("no se puede ejecutar un movimiento no aprobado (estado %s)", m.Status)
	}
	m.Status = entity.MovementStatusExecuted
	m.ExecutedBy = &actor
	m.ExecutedAt = &now
	m.Touch(actor, now)
	return nil
}

// Cancel PENDING/APPROVED → CANCELLED.
func Cancel(m *entity.CareerMovement, actor string, now time.Time) error {
	switch m.Status {
	case entity.MovementStatusExecuted:
		return illegal("no se puede anular un movimiento ejecutado")
	case entity.MovementStatusCancelled:
		return illegal("el movimiento ya está anulado")
	case entity.MovementStatusRejected:
		return illegal("no se puede anular un movimiento rechazado")
	}
	m.Status = entity.MovementStatusCancelled
	m.Touch(actor, now)
	return nil
}

// EffectiveDay fecha de efecto del movimiento truncada al día; si no se indicó, la fecha de ejecución.
func EffectiveDay(m *entity.CareerMovement, now time.Time) time.Time {
	if m.EffectiveDate != nil {
		return entity.Day(*m.EffectiveDate)
	}
	return entity.Day(now)
}
