package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Structure nodo de la jerarquía organizacional. Los contadores de puestos son un modelo de lectura
// desnormalizado que se recalcula desde el conjunto de puestos en cada alta, baja, asignación o liberación.
type Structure struct {
	ID                string
	Code              string
	Name              string
	ParentID          *string
	TotalPositions    int
	OccupiedPositions int
	VacantPositions   int
	OccupancyRate     decimal.Decimal // OccupiedPositions / TotalPositions, 4 decimales
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PositionCounters resultado del reconteo de puestos de una estructura.
type PositionCounters struct {
	Total    int
	Occupied int
	Vacant   int
}

// ApplyCounters reemplaza los contadores con un reconteo autoritativo.
func (s *Structure) ApplyCounters(c PositionCounters, now time.Time) {
	s.TotalPositions = c.Total
	s.OccupiedPositions = c.Occupied
	s.VacantPositions = c.Vacant
	s.OccupancyRate = decimal.Zero
	if c.Total > 0 {
		s.OccupancyRate = decimal.NewFromInt(int64(c.Occupied)).
			Div(decimal.NewFromInt(int64(c.Total))).
			Round(4)
	}
	s.UpdatedAt = now
}
