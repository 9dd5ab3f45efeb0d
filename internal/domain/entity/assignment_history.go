package entity

import (
	"fmt"
	"strings"
	"time"
)

// HistoryStatus estado de un período de asignación.
type HistoryStatus string

const (
	HistoryStatusActive    HistoryStatus = "ACTIVE"
	HistoryStatusCompleted HistoryStatus = "COMPLETED"
	HistoryStatusCancelled HistoryStatus = "CANCELLED"
)

// ParseHistoryStatus convierte texto en HistoryStatus; un valor desconocido se rechaza.
func ParseHistoryStatus(s string) (HistoryStatus, error) {
	switch st := HistoryStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case HistoryStatusActive, HistoryStatusCompleted, HistoryStatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("estado de historial desconocido: %q", s)
}

// AssignmentHistory período durante el cual un personal ocupó un par puesto/estructura.
// Un EndDate nil indica el período abierto (vigente); hay como máximo uno por personal.
type AssignmentHistory struct {
	ID                 string
	PersonnelID        string
	MovementID         *string
	OldPositionID      *string
	NewPositionID      *string
	OldStructureID     *string
	NewStructureID     *string
	MovementType       MovementType
	StartDate          time.Time
	EndDate            *time.Time
	Status             HistoryStatus
	Reason             string
	CancellationReason string
	Decision           DecisionDocument
	Version            int64
	CreatedAt          time.Time
	CreatedBy          string
	UpdatedAt          time.Time
}

// IsOpen período sin fecha de fin.
func (h *AssignmentHistory) IsOpen() bool { return h.EndDate == nil }

// Overlaps indica si dos períodos se solapan (fechas inclusivas; un período abierto no tiene fin).
func (h *AssignmentHistory) Overlaps(o *AssignmentHistory) bool {
	endsBefore := func(a, b *AssignmentHistory) bool {
		return a.EndDate != nil && a.EndDate.Before(b.StartDate)
	}
	return !endsBefore(h, o) && !endsBefore(o, h)
}

// Day trunca una fecha al día (UTC) para los límites de períodos.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
