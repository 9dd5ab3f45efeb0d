package entity

import (
	"fmt"
	"strings"
	"time"
)

// MovementType tipo de movimiento de carrera.
type MovementType string

const (
	MovementTypeAssignment     MovementType = "ASSIGNMENT"
	MovementTypeTransfer       MovementType = "TRANSFER"
	MovementTypePromotion      MovementType = "PROMOTION"
	MovementTypeSecondment     MovementType = "SECONDMENT"
	MovementTypeInterim        MovementType = "INTERIM"
	MovementTypeReinstatement  MovementType = "REINSTATEMENT"
	MovementTypeRetirement     MovementType = "RETIREMENT"
	MovementTypeDeath          MovementType = "DEATH"
	MovementTypeSuspension     MovementType = "SUSPENSION"
	MovementTypeDismissal      MovementType = "DISMISSAL"
	MovementTypeResignation    MovementType = "RESIGNATION"
	MovementTypeLeaveOfAbsence MovementType = "LEAVE_OF_ABSENCE"
)

var movementTypes = map[MovementType]struct{}{
	MovementTypeAssignment: {}, MovementTypeTransfer: {}, MovementTypePromotion: {},
	MovementTypeSecondment: {}, MovementTypeInterim: {}, MovementTypeReinstatement: {},
	MovementTypeRetirement: {}, MovementTypeDeath: {}, MovementTypeSuspension: {},
	MovementTypeDismissal: {}, MovementTypeResignation: {}, MovementTypeLeaveOfAbsence: {},
}

// ParseMovementType convierte texto en MovementType; un valor desconocido se rechaza.
func ParseMovementType(s string) (MovementType, error) {
	t := MovementType(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := movementTypes[t]; !ok {
		return "", fmt.Errorf("tipo de movimiento desconocido: %q", s)
	}
	return t, nil
}

// IsExit movimientos que terminan la ocupación del puesto. Son incompatibles con el cumul.
func (t MovementType) IsExit() bool {
	switch t {
	case MovementTypeRetirement, MovementTypeDeath, MovementTypeSuspension,
		MovementTypeDismissal, MovementTypeResignation, MovementTypeLeaveOfAbsence:
		return true
	}
	return false
}

// ResultingPersonnelStatus situación del personal tras ejecutar el movimiento; ok=false si no cambia.
func (t MovementType) ResultingPersonnelStatus() (PersonnelStatus, bool) {
	switch t {
	case MovementTypeRetirement:
		return PersonnelStatusRetired, true
	case MovementTypeDeath:
		return PersonnelStatusDeceased, true
	case MovementTypeSuspension:
		return PersonnelStatusSuspended, true
	case MovementTypeDismissal:
		return PersonnelStatusDismissed, true
	case MovementTypeResignation:
		return PersonnelStatusResigned, true
	case MovementTypeLeaveOfAbsence:
		return PersonnelStatusOnLeave, true
	case MovementTypeReinstatement:
		return PersonnelStatusActive, true
	}
	return "", false
}

// MovementStatus estado del ciclo de vida del movimiento.
type MovementStatus string

const (
	MovementStatusPending   MovementStatus = "PENDING"
	MovementStatusApproved  MovementStatus = "APPROVED"
	MovementStatusExecuted  MovementStatus = "EXECUTED"
	MovementStatusCancelled MovementStatus = "CANCELLED"
	MovementStatusRejected  MovementStatus = "REJECTED"
)

// ParseMovementStatus convierte texto en MovementStatus; un valor desconocido se rechaza.
func ParseMovementStatus(s string) (MovementStatus, error) {
	switch st := MovementStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case MovementStatusPending, MovementStatusApproved, MovementStatusExecuted,
		MovementStatusCancelled, MovementStatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("estado de movimiento desconocido: %q", s)
}

// IsTerminal EXECUTED, CANCELLED y REJECTED no admiten más transiciones.
func (s MovementStatus) IsTerminal() bool {
	return s == MovementStatusExecuted || s == MovementStatusCancelled || s == MovementStatusRejected
}

// DecisionDocument metadatos del acto administrativo que respalda un movimiento o una asignación.
type DecisionDocument struct {
	Number    string
	Date      *time.Time
	Reference string // ruta o identificador en el gestor documental externo
}

// IsEmpty indica que no se registró documento.
func (d DecisionDocument) IsEmpty() bool {
	return d.Number == "" && d.Date == nil && d.Reference == ""
}

// CareerMovement solicitud de cambio de puesto/estructura de un personal.
type CareerMovement struct {
	ID                     string
	PersonnelID            string
	SourcePositionID       *string
	DestinationPositionID  *string
	SourceStructureID      *string
	DestinationStructureID *string
	Type                   MovementType
	IsOfficialCumul        bool
	Status                 MovementStatus
	EffectiveDate          *time.Time
	Reason                 string
	Decision               DecisionDocument
	RejectionReason        string
	ApprovedBy             *string
	ApprovedAt             *time.Time
	ExecutedBy             *string
	ExecutedAt             *time.Time
	Version                int64
	Lifecycle
}
