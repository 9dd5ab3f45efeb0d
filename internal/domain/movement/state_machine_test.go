package movement_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
	"github.com/jhoicas/Personal-api/internal/domain/movement"
)

var now = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func withStatus(s entity.MovementStatus) *entity.CareerMovement {
	return &entity.CareerMovement{ID: "m-1", Status: s}
}

func TestApprove_SoloDesdePending(t *testing.T) {
	m := withStatus(entity.MovementStatusPending)
	require.NoError(t, movement.Approve(m, "rrhh", now))
	assert.Equal(t, entity.MovementStatusApproved, m.Status)
	require.NotNil(t, m.ApprovedBy)
	assert.Equal(t, "rrhh", *m.ApprovedBy)
	assert.Equal(t, now, *m.ApprovedAt)

	for _, s := range []entity.MovementStatus{
		entity.MovementStatusApproved, entity.MovementStatusExecuted,
		entity.MovementStatusCancelled, entity.MovementStatusRejected,
	} {
		err := movement.Approve(withStatus(s), "rrhh", now)
		assert.ErrorIs(t, err, movement.ErrIllegalState, "approve desde %s", s)
	}
}

func TestExecute_RequiereAprobado(t *testing.T) {
	m := withStatus(entity.MovementStatusPending)
	err := movement.Execute(m, "rrhh", now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, movement.ErrIllegalState))
	assert.Contains(t, err.Error(), "no se puede ejecutar un movimiento no aprobado")
	assert.Equal(t, entity.MovementStatusPending, m.Status)

	m = withStatus(entity.MovementStatusApproved)
	require.NoError(t, movement.Execute(m, "rrhh", now))
	assert.Equal(t, entity.MovementStatusExecuted, m.Status)
	assert.Equal(t, now, *m.ExecutedAt)
}

func TestCancel(t *testing.T) {
	tests := []struct {
		from    entity.MovementStatus
		wantErr bool
	}{
		{entity.MovementStatusPending, false},
		{entity.MovementStatusApproved, false},
		{entity.MovementStatusExecuted, true},
		{entity.MovementStatusCancelled, true},
		{entity.MovementStatusRejected, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			m := withStatus(tt.from)
			err := movement.Cancel(m, "rrhh", now)
			if tt.wantErr {
				assert.ErrorIs(t, err, movement.ErrIllegalState)
				assert.Equal(t, tt.from, m.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entity.MovementStatusCancelled, m.Status)
		})
	}
}

func TestReject(t *testing.T) {
	m := withStatus(entity.MovementStatusApproved)
	require.NoError(t, movement.Reject(m, "sin presupuesto", "rrhh", now))
	assert.Equal(t, entity.MovementStatusRejected, m.Status)
	assert.Equal(t, "sin presupuesto", m.RejectionReason)

	assert.ErrorIs(t, movement.Reject(withStatus(entity.MovementStatusExecuted), "x", "rrhh", now), movement.ErrIllegalState)
}

func TestEnsureMutable(t *testing.T) {
	assert.NoError(t, movement.EnsureMutable(withStatus(entity.MovementStatusApproved)))
	err := movement.EnsureMutable(withStatus(entity.MovementStatusExecuted))
	assert.ErrorIs(t, err, movement.ErrIllegalState)
	assert.Contains(t, err.Error(), "un movimiento ejecutado es inmutable")
}

func TestEffectiveDay(t *testing.T) {
	m := withStatus(entity.MovementStatusApproved)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), movement.EffectiveDay(m, now))

	eff := time.Date(2024, 4, 1, 17, 30, 0, 0, time.UTC)
	m.EffectiveDate = &eff
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), movement.EffectiveDay(m, now))
}
