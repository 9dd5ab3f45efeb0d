package entity

import (
	"fmt"
	"slices"
	"strings"
)

// PersonnelStatus situación administrativa del personal.
type PersonnelStatus string

const (
	PersonnelStatusActive    PersonnelStatus = "ACTIVE"
	PersonnelStatusRetired   PersonnelStatus = "RETIRED"
	PersonnelStatusDeceased  PersonnelStatus = "DECEASED"
	PersonnelStatusSuspended PersonnelStatus = "SUSPENDED"
	PersonnelStatusDismissed PersonnelStatus = "DISMISSED"
	PersonnelStatusResigned  PersonnelStatus = "RESIGNED"
	PersonnelStatusOnLeave   PersonnelStatus = "ON_LEAVE"
)

// ParsePersonnelStatus convierte un texto almacenado en PersonnelStatus. Un valor desconocido es un error.
func ParsePersonnelStatus(s string) (PersonnelStatus, error) {
	switch st := PersonnelStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case PersonnelStatusActive, PersonnelStatusRetired, PersonnelStatusDeceased, PersonnelStatusSuspended,
		PersonnelStatusDismissed, PersonnelStatusResigned, PersonnelStatusOnLeave:
		return st, nil
	}
	return "", fmt.Errorf("situación de personal desconocida: %q", s)
}

// Personnel agente de la planta. Sin RegistrationNumber se trata de personal no matriculado (E.C.I.).
type Personnel struct {
	ID                 string
	RegistrationNumber *string
	FirstName          string
	LastName           string
	Status             PersonnelStatus
	CurrentPositionID  *string
	CumulPositionIDs   []string
	StructureID        *string
	CumulAuthorized    bool
	Version            int64
	Lifecycle
}

// IsUnregistered indica si el personal no tiene matrícula.
func (p *Personnel) IsUnregistered() bool {
	return p.RegistrationNumber == nil || strings.TrimSpace(*p.RegistrationNumber) == ""
}

// HasCurrentPosition indica si tiene un puesto vigente.
func (p *Personnel) HasCurrentPosition() bool {
	return p.CurrentPositionID != nil
}

// CanBeAssignedToPosition activo y sin puesto, o con autorización de cumul.
func (p *Personnel) CanBeAssignedToPosition() bool {
	return p.Status == PersonnelStatusActive && (!p.HasCurrentPosition() || p.CumulAuthorized)
}

// HoldsPosition indica si el puesto es el vigente o uno acumulado.
func (p *Personnel) HoldsPosition(positionID string) bool {
	if p.CurrentPositionID != nil && *p.CurrentPositionID == positionID {
		return true
	}
	return slices.Contains(p.CumulPositionIDs, positionID)
}

// DropPosition quita la referencia al puesto. Si era el vigente y hay cumul, el primer puesto acumulado pasa a vigente.
func (p *Personnel) DropPosition(positionID string) {
	if p.CurrentPositionID != nil && *p.CurrentPositionID == positionID {
		p.CurrentPositionID = nil
		if len(p.CumulPositionIDs) > 0 {
			next := p.CumulPositionIDs[0]
			p.CurrentPositionID = &next
			p.CumulPositionIDs = slices.Clone(p.CumulPositionIDs[1:])
		}
		return
	}
	p.CumulPositionIDs = slices.DeleteFunc(p.CumulPositionIDs, func(id string) bool { return id == positionID })
}

// TakePosition registra el puesto como vigente, o como acumulado cuando cumul es verdadero y ya tiene uno.
func (p *Personnel) TakePosition(positionID string, cumul bool) {
	if cumul && p.CurrentPositionID != nil {
		p.CumulPositionIDs = append(p.CumulPositionIDs, positionID)
		return
	}
	id := positionID
	p.CurrentPositionID = &id
}

// ClearPositions quita el puesto vigente y los acumulados.
func (p *Personnel) ClearPositions() {
	p.CurrentPositionID = nil
	p.CumulPositionIDs = nil
}
