package dto

import "github.com/jhoicas/Personal-api/internal/domain/entity"

// CreatePersonnelRequest body para POST /api/personnel. Sin matrícula se registra como no matriculado (E.C.I.).
type CreatePersonnelRequest struct {
	RegistrationNumber *string `json:"registration_number,omitempty" validate:"omitempty,max=30"`
	FirstName          string  `json:"first_name" validate:"required,max=100"`
	LastName           string  `json:"last_name" validate:"required,max=100"`
	StructureID        *string `json:"structure_id,omitempty"`
	CumulAuthorized    bool    `json:"cumul_authorized"`
}

// CumulAuthorizationRequest body para PUT /api/personnel/:id/cumul.
type CumulAuthorizationRequest struct {
	Authorized bool   `json:"authorized"`
	Version    *int64 `json:"version,omitempty"`
}

// PersonnelResponse representación de un personal.
type PersonnelResponse struct {
	ID                 string   `json:"id"`
	RegistrationNumber *string  `json:"registration_number,omitempty"`
	Unregistered       bool     `json:"unregistered"`
	FirstName          string   `json:"first_name"`
	LastName           string   `json:"last_name"`
	Status             string   `json:"status"`
	CurrentPositionID  *string  `json:"current_position_id,omitempty"`
	CumulPositionIDs   []string `json:"cumul_position_ids,omitempty"`
	StructureID        *string  `json:"structure_id,omitempty"`
	CumulAuthorized    bool     `json:"cumul_authorized"`
	Version            int64    `json:"version"`
}

// ToPersonnelResponse mapea la entidad.
func ToPersonnelResponse(p *entity.Personnel) *PersonnelResponse {
	return &PersonnelResponse{
		ID:                 p.ID,
		RegistrationNumber: p.RegistrationNumber,
		Unregistered:       p.IsUnregistered(),
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Status:             string(p.Status),
		CurrentPositionID:  p.CurrentPositionID,
		CumulPositionIDs:   p.CumulPositionIDs,
		StructureID:        p.StructureID,
		CumulAuthorized:    p.CumulAuthorized,
		Version:            p.Version,
	}
}
