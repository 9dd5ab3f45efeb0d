package history_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Personal-api/internal/application/dto"
	"github.com/jhoicas/Personal-api/internal/application/history"
	"github.com/jhoicas/Personal-api/internal/application/ports"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
	"github.com/jhoicas/Personal-api/internal/infrastructure/memory"
)

type capturePublisher struct {
	entries []*entity.AuditLog
}

func (c *capturePublisher) Publish(_ context.Context, entries []*entity.AuditLog) error {
	c.entries = append(c.entries, entries...)
	return nil
}

func TestUseCase_PublicaLaBitacoraDelHistorial(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Personnel().Create(ctx, &entity.Personnel{
		ID: "per-1", FirstName: "Ana", LastName: "Ruiz", Status: entity.PersonnelStatusActive,
		Lifecycle: entity.NewLifecycle("seed", now),
	}))
	pub := &capturePublisher{}
	uc := history.NewUseCase(store, ports.StaticIdentity("rrhh")).WithPublisher(pub, zerolog.Nop())

	h, err := uc.RecordAssignment(ctx, "per-1", dto.RecordAssignmentRequest{
		StartDate:    day(2024, 1, 1),
		MovementType: "ASSIGNMENT",
	})
	require.NoError(t, err)
	_, err = uc.EndAssignment(ctx, h.ID, dto.EndAssignmentRequest{EndDate: day(2024, 2, 1)})
	require.NoError(t, err)

	_, err = uc.RecordAssignment(ctx, "per-404", dto.RecordAssignmentRequest{StartDate: day(2024, 3, 1), MovementType: "ASSIGNMENT"})
	require.Error(t, err)

	require.Len(t, pub.entries, 2)
	assert.Equal(t, entity.AuditActionCreate, pub.entries[0].Action)
	assert.Equal(t, entity.AuditActionUpdate, pub.entries[1].Action)
	for _, e := range pub.entries {
		assert.Equal(t, entity.EntityAssignmentHistory, e.EntityType)
		assert.Equal(t, h.ID, e.EntityID)
	}
}
