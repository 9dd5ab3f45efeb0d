package entity

import "time"

// AuditAction acción registrada en la bitácora.
type AuditAction string

const (
	AuditActionCreate  AuditAction = "CREATE"
	AuditActionUpdate  AuditAction = "UPDATE"
	AuditActionApprove AuditAction = "APPROVE"
	AuditActionReject  AuditAction = "REJECT"
	AuditActionExecute AuditAction = "EXECUTE"
	AuditActionCancel  AuditAction = "CANCEL"
	AuditActionDelete  AuditAction = "DELETE"
	AuditActionAssign  AuditAction = "ASSIGN"
	AuditActionRelease AuditAction = "RELEASE"
)

// Tipos de entidad auditados.
const (
	EntityCareerMovement    = "CareerMovement"
	EntityPosition          = "Position"
	EntityPersonnel         = "Personnel"
	EntityStructure         = "Structure"
	EntityAssignmentHistory = "AssignmentHistory"
)

// AuditLog entrada inmutable de la bitácora (solo inserción).
type AuditLog struct {
	ID         string
	EntityType string
	EntityID   string
	Action     AuditAction
	Actor      string
	Timestamp  time.Time
	Payload    map[string]any
}
