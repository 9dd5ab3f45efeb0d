package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestPosition_OcupacionYLiberacion(t *testing.T) {
	p := &entity.Position{Code: "P-1", Status: entity.PositionStatusVacant}
	require.True(t, p.IsAvailableForAssignment())

	require.NoError(t, p.Occupy("a", false, t0))
	assert.Equal(t, entity.PositionStatusOccupied, p.Status)
	assert.False(t, p.IsAvailableForAssignment())
	require.NoError(t, p.CheckInvariant())

	assert.Error(t, p.Occupy("b", false, t0), "sin cumul exige vacante")
	assert.Error(t, p.Occupy("a", true, t0), "ya ocupa el puesto")

	require.NoError(t, p.Occupy("b", true, t0))
	require.NoError(t, p.Occupy("c", true, t0))
	assert.True(t, p.IsOccupiedBy("c"))

	p.Vacate("b", t0)
	assert.Equal(t, []string{"c"}, p.SecondaryOccupantIDs)
	assert.Equal(t, "a", *p.PrimaryOccupantID)

	p.Vacate("a", t0)
	assert.Equal(t, "c", *p.PrimaryOccupantID)
	assert.Empty(t, p.SecondaryOccupantIDs)
	require.NoError(t, p.CheckInvariant())

	p.Vacate("c", t0)
	assert.Equal(t, entity.PositionStatusVacant, p.Status)
	assert.Nil(t, p.PrimaryOccupantID)
	assert.Nil(t, p.AssignedAt)
	require.NoError(t, p.CheckInvariant())
}

func TestPosition_VacateCompleto(t *testing.T) {
	p := &entity.Position{Code: "P-1", Status: entity.PositionStatusVacant}
	require.NoError(t, p.Occupy("a", false, t0))
	require.NoError(t, p.Occupy("b", true, t0))

	p.Vacate("", t0)
	assert.Equal(t, entity.PositionStatusVacant, p.Status)
	assert.Nil(t, p.PrimaryOccupantID)
	assert.Empty(t, p.SecondaryOccupantIDs)
}

func TestPosition_CongeladoNoSeOcupa(t *testing.T) {
	for _, st := range []entity.PositionStatus{entity.PositionStatusFrozen, entity.PositionStatusAbolished} {
		p := &entity.Position{Code: "P-1", Status: st}
		assert.False(t, p.IsAvailableForAssignment())
		assert.Error(t, p.Occupy("a", true, t0))
	}
}

func TestPosition_CheckInvariant(t *testing.T) {
	id := "a"
	assert.Error(t, (&entity.Position{Status: entity.PositionStatusOccupied}).CheckInvariant())
	assert.Error(t, (&entity.Position{Status: entity.PositionStatusVacant, PrimaryOccupantID: &id}).CheckInvariant())
	assert.Error(t, (&entity.Position{Status: entity.PositionStatusVacant, SecondaryOccupantIDs: []string{"b"}}).CheckInvariant())
}

func TestPersonnel_Puestos(t *testing.T) {
	p := &entity.Personnel{Status: entity.PersonnelStatusActive}
	assert.True(t, p.CanBeAssignedToPosition())
	assert.True(t, p.IsUnregistered())

	p.TakePosition("y", true)
	assert.Equal(t, "y", *p.CurrentPositionID, "sin puesto vigente el cumul no aplica")
	assert.False(t, p.CanBeAssignedToPosition())

	p.CumulAuthorized = true
	assert.True(t, p.CanBeAssignedToPosition())
	p.TakePosition("x", true)
	assert.Equal(t, []string{"x"}, p.CumulPositionIDs)
	assert.True(t, p.HoldsPosition("x"))

	p.DropPosition("y")
	assert.Equal(t, "x", *p.CurrentPositionID)
	assert.Empty(t, p.CumulPositionIDs)

	p.Status = entity.PersonnelStatusRetired
	assert.False(t, p.CanBeAssignedToPosition())

	p.ClearPositions()
	assert.False(t, p.HasCurrentPosition())
}

func TestParseEnums(t *testing.T) {
	mt, err := entity.ParseMovementType(" retirement ")
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeRetirement, mt)
	assert.True(t, mt.IsExit())
	st, ok := mt.ResultingPersonnelStatus()
	assert.True(t, ok)
	assert.Equal(t, entity.PersonnelStatusRetired, st)

	_, ok = entity.MovementTypeTransfer.ResultingPersonnelStatus()
	assert.False(t, ok)

	_, err = entity.ParseMovementType("")
	assert.Error(t, err)
	_, err = entity.ParseMovementStatus("DONE")
	assert.Error(t, err)
	_, err = entity.ParsePositionStatus("vacant")
	assert.NoError(t, err)
	_, err = entity.ParsePersonnelStatus("ZOMBIE")
	assert.Error(t, err)
	_, err = entity.ParseHistoryStatus("completed")
	assert.NoError(t, err)
}

func TestStructure_ApplyCounters(t *testing.T) {
	s := &entity.Structure{}
	s.ApplyCounters(entity.PositionCounters{Total: 3, Occupied: 1, Vacant: 2}, t0)
	assert.Equal(t, "0.3333", s.OccupancyRate.String())

	s.ApplyCounters(entity.PositionCounters{}, t0)
	assert.True(t, s.OccupancyRate.IsZero())
}
