package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Personal-api/internal/application/ports"
	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
	"github.com/jhoicas/Personal-api/internal/infrastructure/memory"
)

func nuevoPuesto(code string) *entity.Position {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return &entity.Position{
		Code:        code,
		Title:       "Analista",
		StructureID: "est-1",
		Status:      entity.PositionStatusVacant,
		Lifecycle:   entity.NewLifecycle("admin", now),
	}
}

// ─── Transacciones ──────────────────────────────────────────────────────────

func TestRun_ErrorDescartaEscrituras(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Run(ctx, func(repos ports.Repositories) error {
		require.NoError(t, repos.Positions.Create(ctx, nuevoPuesto("P-001")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := store.Positions().GetByCode(ctx, "P-001")
	require.NoError(t, err)
	assert.Nil(t, p, "el puesto no debe sobrevivir al rollback")
}

func TestRun_ConfirmaEscrituras(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	err := store.Run(ctx, func(repos ports.Repositories) error {
		return repos.Positions.Create(ctx, nuevoPuesto("P-001"))
	})
	require.NoError(t, err)

	p, err := store.Positions().GetByCode(ctx, "P-001")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.NotEmpty(t, p.ID)
}

func TestRun_ContextoCancelado(t *testing.T) {
	store := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.Run(ctx, func(ports.Repositories) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

// ─── Versiones ──────────────────────────────────────────────────────────────

func TestUpdate_VersionObsoleta(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repo := store.Positions()

	p := nuevoPuesto("P-001")
	require.NoError(t, repo.Create(ctx, p))

	first, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)

	first.Title = "Jefe"
	require.NoError(t, repo.Update(ctx, first))
	assert.Equal(t, int64(1), first.Version)

	second.Title = "Otro"
	err = repo.Update(ctx, second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConcurrencyConflict))

	stored, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jefe", stored.Title)
}

func TestGetByID_CopiaIndependiente(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repo := store.Positions()

	p := nuevoPuesto("P-001")
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	got.Title = "mutado"
	got.SecondaryOccupantIDs = append(got.SecondaryOccupantIDs, "x")

	again, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Analista", again.Title)
	assert.Empty(t, again.SecondaryOccupantIDs)
}

// ─── Consultas ──────────────────────────────────────────────────────────────

func TestCreate_CodigoDuplicado(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repo := store.Positions()

	require.NoError(t, repo.Create(ctx, nuevoPuesto("P-001")))
	err := repo.Create(ctx, nuevoPuesto("P-001"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCountByStructure_ExcluyeBorradosYSuprimidos(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repo := store.Positions()
	now := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	occupied := nuevoPuesto("P-001")
	occupant := "per-1"
	occupied.Status = entity.PositionStatusOccupied
	occupied.PrimaryOccupantID = &occupant
	require.NoError(t, repo.Create(ctx, occupied))

	require.NoError(t, repo.Create(ctx, nuevoPuesto("P-002")))

	abolished := nuevoPuesto("P-003")
	abolished.Status = entity.PositionStatusAbolished
	require.NoError(t, repo.Create(ctx, abolished))

	deleted := nuevoPuesto("P-004")
	deleted.MarkDeleted("admin", now)
	require.NoError(t, repo.Create(ctx, deleted))

	c, err := repo.CountByStructure(ctx, "est-1")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Total)
	assert.Equal(t, 1, c.Occupied)
	assert.Equal(t, 1, c.Vacant)

	list, err := repo.ListByStructure(ctx, "est-1", 1, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "P-002", list[0].Code)
}
