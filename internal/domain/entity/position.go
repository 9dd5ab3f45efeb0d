package entity

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// PositionStatus estado de ocupación de un puesto.
type PositionStatus string

const (
	PositionStatusVacant    PositionStatus = "VACANT"
	PositionStatusOccupied  PositionStatus = "OCCUPIED"
	PositionStatusFrozen    PositionStatus = "FROZEN"    // congelado presupuestalmente, no asignable
	PositionStatusAbolished PositionStatus = "ABOLISHED" // suprimido
)

// ParsePositionStatus convierte un texto almacenado en PositionStatus. Un valor desconocido es un error.
func ParsePositionStatus(s string) (PositionStatus, error) {
	switch st := PositionStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case PositionStatusVacant, PositionStatusOccupied, PositionStatusFrozen, PositionStatusAbolished:
		return st, nil
	}
	return "", fmt.Errorf("estado de puesto desconocido: %q", s)
}

// Position puesto de la planta de personal.
//
// Invariante: Status == OCCUPIED si y solo si PrimaryOccupantID está definido. Los ocupantes
// secundarios (cumul) solo existen mientras haya un ocupante principal.
type Position struct {
	ID                   string
	Code                 string
	Title                string
	StructureID          string
	Status               PositionStatus
	PrimaryOccupantID    *string
	SecondaryOccupantIDs []string
	AssignedAt           *time.Time
	Version              int64
	Lifecycle
}

// IsAvailableForAssignment predicado puro: el puesto está vacante.
func (p *Position) IsAvailableForAssignment() bool {
	return p.Status == PositionStatusVacant
}

// IsOccupiedBy indica si el personal ocupa el puesto como principal o secundario.
func (p *Position) IsOccupiedBy(personnelID string) bool {
	if p.PrimaryOccupantID != nil && *p.PrimaryOccupantID == personnelID {
		return true
	}
	return slices.Contains(p.SecondaryOccupantIDs, personnelID)
}

// Occupy asigna el personal al puesto. Sin cumul exige vacante; con cumul sobre un puesto ocupado
// el personal se agrega como ocupante secundario.
func (p *Position) Occupy(personnelID string, cumul bool, now time.Time) error {
	if p.IsOccupiedBy(personnelID) {
		return fmt.Errorf("el personal %s ya ocupa el puesto %s", personnelID, p.Code)
	}
	switch {
	case p.Status == PositionStatusVacant:
		id := personnelID
		p.PrimaryOccupantID = &id
		p.Status = PositionStatusOccupied
		p.AssignedAt = &now
	case p.Status == PositionStatusOccupied && cumul:
		p.SecondaryOccupantIDs = append(p.SecondaryOccupantIDs, personnelID)
	default:
		return fmt.Errorf("puesto %s no disponible (estado %s)", p.Code, p.Status)
	}
	return nil
}

// Vacate retira al personal del puesto. Si sale el ocupante principal y hay secundarios,
// el primer secundario pasa a principal; si no queda nadie el puesto vuelve a VACANT.
// Con personnelID vacío se libera el puesto completo.
func (p *Position) Vacate(personnelID string, now time.Time) {
	if personnelID != "" && p.PrimaryOccupantID != nil && *p.PrimaryOccupantID != personnelID {
		p.SecondaryOccupantIDs = slices.DeleteFunc(p.SecondaryOccupantIDs, func(id string) bool { return id == personnelID })
		return
	}
	if personnelID == "" {
		p.SecondaryOccupantIDs = nil
	}
	if len(p.SecondaryOccupantIDs) > 0 {
		next := p.SecondaryOccupantIDs[0]
		p.PrimaryOccupantID = &next
		p.SecondaryOccupantIDs = slices.Clone(p.SecondaryOccupantIDs[1:])
		p.AssignedAt = &now
		return
	}
	p.PrimaryOccupantID = nil
	p.SecondaryOccupantIDs = nil
	p.AssignedAt = nil
	if p.Status == PositionStatusOccupied {
		p.Status = PositionStatusVacant
	}
}

// CheckInvariant verifica la coherencia entre estado y ocupante.
func (p *Position) CheckInvariant() error {
	occupied := p.Status == PositionStatusOccupied
	if occupied != (p.PrimaryOccupantID != nil) {
		return fmt.Errorf("puesto %s: estado %s incoherente con el ocupante", p.Code, p.Status)
	}
	if !occupied && len(p.SecondaryOccupantIDs) > 0 {
		return fmt.Errorf("puesto %s: ocupantes secundarios sin ocupante principal", p.Code)
	}
	return nil
}
