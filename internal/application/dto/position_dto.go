package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// CreatePositionRequest body para POST /api/positions.
type CreatePositionRequest struct {
	Code        string `json:"code" validate:"required,max=50"`
	Title       string `json:"title" validate:"required,max=200"`
	StructureID string `json:"structure_id" validate:"required"`
}

// AssignPositionRequest body para POST /api/positions/:id/assign.
type AssignPositionRequest struct {
	PersonnelID string `json:"personnel_id" validate:"required"`
	Cumul       bool   `json:"cumul"`
}

// PositionResponse representación de un puesto.
type PositionResponse struct {
	ID                   string     `json:"id"`
	Code                 string     `json:"code"`
	Title                string     `json:"title"`
	StructureID          string     `json:"structure_id"`
	Status               string     `json:"status"`
	PrimaryOccupantID    *string    `json:"primary_occupant_id,omitempty"`
	SecondaryOccupantIDs []string   `json:"secondary_occupant_ids,omitempty"`
	AssignedAt           *time.Time `json:"assigned_at,omitempty"`
	Version              int64      `json:"version"`
}

// ToPositionResponse mapea la entidad.
func ToPositionResponse(p *entity.Position) *PositionResponse {
	return &PositionResponse{
		ID:                   p.ID,
		Code:                 p.Code,
		Title:                p.Title,
		StructureID:          p.StructureID,
		Status:               string(p.Status),
		PrimaryOccupantID:    p.PrimaryOccupantID,
		SecondaryOccupantIDs: p.SecondaryOccupantIDs,
		AssignedAt:           p.AssignedAt,
		Version:              p.Version,
	}
}

// CreateStructureRequest body para POST /api/structures.
type CreateStructureRequest struct {
	Code     string  `json:"code" validate:"required,max=50"`
	Name     string  `json:"name" validate:"required,max=200"`
	ParentID *string `json:"parent_id,omitempty"`
}

// StructureResponse contadores de puestos de una estructura.
type StructureResponse struct {
	ID                string          `json:"id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	ParentID          *string         `json:"parent_id,omitempty"`
	TotalPositions    int             `json:"total_positions"`
	OccupiedPositions int             `json:"occupied_positions"`
	VacantPositions   int             `json:"vacant_positions"`
	OccupancyRate     decimal.Decimal `json:"occupancy_rate"`
}

// ToStructureResponse mapea la entidad.
func ToStructureResponse(s *entity.Structure) *StructureResponse {
	return &StructureResponse{
		ID:                s.ID,
		Code:              s.Code,
		Name:              s.Name,
		ParentID:          s.ParentID,
		TotalPositions:    s.TotalPositions,
		OccupiedPositions: s.OccupiedPositions,
		VacantPositions:   s.VacantPositions,
		OccupancyRate:     s.OccupancyRate,
	}
}
