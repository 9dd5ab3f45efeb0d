package dto

import (
	"time"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// DecisionDocumentDTO metadatos del acto administrativo (el archivo vive en el gestor documental).
type DecisionDocumentDTO struct {
	Number    string     `json:"number" validate:"max=100"`
	Date      *time.Time `json:"date,omitempty"`
	Reference string     `json:"reference,omitempty" validate:"max=500"`
}

// ToEntity convierte a valor de dominio; nil produce un documento vacío.
func (d *DecisionDocumentDTO) ToEntity() entity.DecisionDocument {
	if d == nil {
		return entity.DecisionDocument{}
	}
	return entity.DecisionDocument{Number: d.Number, Date: d.Date, Reference: d.Reference}
}

// FromDecisionDocument nil si el documento está vacío.
func FromDecisionDocument(d entity.DecisionDocument) *DecisionDocumentDTO {
	if d.IsEmpty() {
		return nil
	}
	return &DecisionDocumentDTO{Number: d.Number, Date: d.Date, Reference: d.Reference}
}

// RecordAssignmentRequest body para POST /api/personnel/:id/assignments.
type RecordAssignmentRequest struct {
	OldPositionID  *string              `json:"old_position_id,omitempty"`
	NewPositionID  *string              `json:"new_position_id,omitempty"`
	OldStructureID *string              `json:"old_structure_id,omitempty"`
	NewStructureID *string              `json:"new_structure_id,omitempty"`
	StartDate      time.Time            `json:"start_date" validate:"required"`
	MovementType   string               `json:"movement_type" validate:"required"`
	Reason         string               `json:"reason,omitempty"`
	Decision       *DecisionDocumentDTO `json:"decision,omitempty"`
}

// EndAssignmentRequest body para POST /api/assignments/:id/end.
type EndAssignmentRequest struct {
	EndDate time.Time `json:"end_date" validate:"required"`
}

// CancelAssignmentRequest body para POST /api/assignments/:id/cancel.
type CancelAssignmentRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

// AssignmentHistoryResponse representación de un período de asignación.
type AssignmentHistoryResponse struct {
	ID                 string               `json:"id"`
	PersonnelID        string               `json:"personnel_id"`
	MovementID         *string              `json:"movement_id,omitempty"`
	OldPositionID      *string              `json:"old_position_id,omitempty"`
	NewPositionID      *string              `json:"new_position_id,omitempty"`
	OldStructureID     *string              `json:"old_structure_id,omitempty"`
	NewStructureID     *string              `json:"new_structure_id,omitempty"`
	MovementType       string               `json:"movement_type"`
	StartDate          string               `json:"start_date"`
	EndDate            *string              `json:"end_date,omitempty"`
	Status             string               `json:"status"`
	Reason             string               `json:"reason,omitempty"`
	CancellationReason string               `json:"cancellation_reason,omitempty"`
	Decision           *DecisionDocumentDTO `json:"decision,omitempty"`
	Version            int64                `json:"version"`
}

// ToAssignmentHistoryResponse mapea la entidad; las fechas salen como YYYY-MM-DD.
func ToAssignmentHistoryResponse(h *entity.AssignmentHistory) *AssignmentHistoryResponse {
	out := &AssignmentHistoryResponse{
		ID:                 h.ID,
		PersonnelID:        h.PersonnelID,
		MovementID:         h.MovementID,
		OldPositionID:      h.OldPositionID,
		NewPositionID:      h.NewPositionID,
		OldStructureID:     h.OldStructureID,
		NewStructureID:     h.NewStructureID,
		MovementType:       string(h.MovementType),
		StartDate:          h.StartDate.Format(time.DateOnly),
		Status:             string(h.Status),
		Reason:             h.Reason,
		CancellationReason: h.CancellationReason,
		Decision:           FromDecisionDocument(h.Decision),
		Version:            h.Version,
	}
	if h.EndDate != nil {
		end := h.EndDate.Format(time.DateOnly)
		out.EndDate = &end
	}
	return out
}
