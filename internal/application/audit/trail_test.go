package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Personal-api/internal/application/audit"
	"github.com/jhoicas/Personal-api/internal/application/ports"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
	"github.com/jhoicas/Personal-api/internal/infrastructure/memory"
)

func TestTrail_AppendPersisteYAcumula(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	var trail *audit.Trail
	err := store.Run(ctx, func(repos ports.Repositories) error {
		trail = audit.NewTrail(repos.Audit)
		return trail.Append(ctx, entity.EntityCareerMovement, "m-1", entity.AuditActionCreate, "rrhh", ts,
			map[string]any{"type": "ASSIGNMENT"})
	})
	require.NoError(t, err)
	require.Len(t, trail.Entries(), 1)

	logs, err := store.AuditLogs().ListByEntity(ctx, entity.EntityCareerMovement, "m-1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditActionCreate, logs[0].Action)
	assert.Equal(t, "rrhh", logs[0].Actor)
	assert.Equal(t, ts, logs[0].Timestamp)
	assert.Equal(t, "ASSIGNMENT", logs[0].Payload["type"])
}

func TestTrail_RollbackDescartaEntradas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	err := store.Run(ctx, func(repos ports.Repositories) error {
		trail := audit.NewTrail(repos.Audit)
		require.NoError(t, trail.Append(ctx, entity.EntityPosition, "p-1", entity.AuditActionAssign, "rrhh", time.Time{}, nil))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	logs, err := store.AuditLogs().ListByEntity(ctx, entity.EntityPosition, "p-1")
	require.NoError(t, err)
	assert.Empty(t, logs)
}
