package entity

import "time"

// Lifecycle metadatos de creación, actualización y borrado lógico compartidos por los registros mutables.
type Lifecycle struct {
	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
	UpdatedBy string
	DeletedAt *time.Time
	DeletedBy *string
}

// NewLifecycle inicializa los metadatos de un registro recién creado.
func NewLifecycle(actor string, now time.Time) Lifecycle {
	return Lifecycle{CreatedAt: now, CreatedBy: actor, UpdatedAt: now, UpdatedBy: actor}
}

// IsDeleted indica si el registro fue borrado lógicamente.
func (l Lifecycle) IsDeleted() bool { return l.DeletedAt != nil }

// Touch registra una modificación.
func (l *Lifecycle) Touch(actor string, now time.Time) {
	l.UpdatedAt = now
	l.UpdatedBy = actor
}

// MarkDeleted aplica el borrado lógico.
func (l *Lifecycle) MarkDeleted(actor string, now time.Time) {
	l.DeletedAt = &now
	l.DeletedBy = &actor
	l.Touch(actor, now)
}
