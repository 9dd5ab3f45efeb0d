package memory

import (
	"maps"
	"slices"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

func copyPosition(p *entity.Position) *entity.Position {
	c := *p
	c.SecondaryOccupantIDs = slices.Clone(p.SecondaryOccupantIDs)
	return &c
}

func copyPersonnel(p *entity.Personnel) *entity.Personnel {
	c := *p
	c.CumulPositionIDs = slices.Clone(p.CumulPositionIDs)
	return &c
}

func copyStructure(s *entity.Structure) *entity.Structure {
	c := *s
	return &c
}

func copyMovement(m *entity.CareerMovement) *entity.CareerMovement {
	c := *m
	return &c
}

func copyHistory(h *entity.AssignmentHistory) *entity.AssignmentHistory {
	c := *h
	return &c
}

func copyAudit(a *entity.AuditLog) *entity.AuditLog {
	c := *a
	c.Payload = maps.Clone(a.Payload)
	return &c
}
