package dto

import (
	"time"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// AuditLogResponse entrada de bitácora (solo lectura, para trazabilidad).
type AuditLogResponse struct {
	ID         string         `json:"id"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Action     string         `json:"action"`
	Actor      string         `json:"actor"`
	Timestamp  time.Time      `json:"timestamp"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// ToAuditLogResponse mapea la entidad.
func ToAuditLogResponse(a *entity.AuditLog) *AuditLogResponse {
	return &AuditLogResponse{
		ID:         a.ID,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		Action:     string(a.Action),
		Actor:      a.Actor,
		Timestamp:  a.Timestamp,
		Payload:    a.Payload,
	}
}
