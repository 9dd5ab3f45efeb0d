package dto

import (
	"time"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	PersonnelID            string               `json:"personnel_id" validate:"required"`
	SourcePositionID       *string              `json:"source_position_id,omitempty"`
	DestinationPositionID  *string              `json:"destination_position_id,omitempty"`
	SourceStructureID      *string              `json:"source_structure_id,omitempty"`
	DestinationStructureID *string              `json:"destination_structure_id,omitempty"`
	MovementType           string               `json:"movement_type" validate:"required"`
	IsOfficialCumul        bool                 `json:"is_official_cumul"`
	EffectiveDate          *time.Time           `json:"effective_date,omitempty"`
	Reason                 string               `json:"reason,omitempty" validate:"max=1000"`
	Decision               *DecisionDocumentDTO `json:"decision,omitempty"`
}

// UpdateMovementRequest body para PATCH /api/movements/:id. Solo se aplican los campos presentes.
// Version, si viene, debe coincidir con la versión almacenada.
type UpdateMovementRequest struct {
	SourcePositionID       *string              `json:"source_position_id,omitempty"`
	DestinationPositionID  *string              `json:"destination_position_id,omitempty"`
	SourceStructureID      *string              `json:"source_structure_id,omitempty"`
	DestinationStructureID *string              `json:"destination_structure_id,omitempty"`
	MovementType           *string              `json:"movement_type,omitempty"`
	IsOfficialCumul        *bool                `json:"is_official_cumul,omitempty"`
	EffectiveDate          *time.Time           `json:"effective_date,omitempty"`
	Reason                 *string              `json:"reason,omitempty" validate:"omitempty,max=1000"`
	Decision               *DecisionDocumentDTO `json:"decision,omitempty"`
	Version                *int64               `json:"version,omitempty"`
}

// TransitionRequest body opcional de approve/execute/cancel/delete.
type TransitionRequest struct {
	Version *int64 `json:"version,omitempty"`
}

// RejectMovementRequest body para POST /api/movements/:id/reject.
type RejectMovementRequest struct {
	Reason  string `json:"reason" validate:"required,max=1000"`
	Version *int64 `json:"version,omitempty"`
}

// ListMovementsQuery filtros de GET /api/movements.
type ListMovementsQuery struct {
	PersonnelID string `query:"personnel_id"`
	Status      string `query:"status"`
	Type        string `query:"type"`
	PageRequest
}

// MovementResponse representación de un movimiento.
type MovementResponse struct {
	ID                     string               `json:"id"`
	PersonnelID            string               `json:"personnel_id"`
	SourcePositionID       *string              `json:"source_position_id,omitempty"`
	DestinationPositionID  *string              `json:"destination_position_id,omitempty"`
	SourceStructureID      *string              `json:"source_structure_id,omitempty"`
	DestinationStructureID *string              `json:"destination_structure_id,omitempty"`
	MovementType           string               `json:"movement_type"`
	IsOfficialCumul        bool                 `json:"is_official_cumul"`
	Status                 string               `json:"status"`
	EffectiveDate          *time.Time           `json:"effective_date,omitempty"`
	Reason                 string               `json:"reason,omitempty"`
	RejectionReason        string               `json:"rejection_reason,omitempty"`
	Decision               *DecisionDocumentDTO `json:"decision,omitempty"`
	ApprovedBy             *string              `json:"approved_by,omitempty"`
	ApprovedAt             *time.Time           `json:"approved_at,omitempty"`
	ExecutedBy             *string              `json:"executed_by,omitempty"`
	ExecutedAt             *time.Time           `json:"executed_at,omitempty"`
	Version                int64                `json:"version"`
	CreatedAt              time.Time            `json:"created_at"`
	CreatedBy              string               `json:"created_by"`
	UpdatedAt              time.Time            `json:"updated_at"`
}

// MovementListResponse página de movimientos.
type MovementListResponse struct {
	Items []*MovementResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// ToMovementResponse mapea la entidad a su representación.
func ToMovementResponse(m *entity.CareerMovement) *MovementResponse {
	return &MovementResponse{
		ID:                     m.ID,
		PersonnelID:            m.PersonnelID,
		SourcePositionID:       m.SourcePositionID,
		DestinationPositionID:  m.DestinationPositionID,
		SourceStructureID:      m.SourceStructureID,
		DestinationStructureID: m.DestinationStructureID,
		MovementType:           string(m.Type),
		IsOfficialCumul:        m.IsOfficialCumul,
		Status:                 string(m.Status),
		EffectiveDate:          m.EffectiveDate,
		Reason:                 m.Reason,
		RejectionReason:        m.RejectionReason,
		Decision:               FromDecisionDocument(m.Decision),
		ApprovedBy:             m.ApprovedBy,
		ApprovedAt:             m.ApprovedAt,
		ExecutedBy:             m.ExecutedBy,
		ExecutedAt:             m.ExecutedAt,
		Version:                m.Version,
		CreatedAt:              m.CreatedAt,
		CreatedBy:              m.CreatedBy,
		UpdatedAt:              m.UpdatedAt,
	}
}
