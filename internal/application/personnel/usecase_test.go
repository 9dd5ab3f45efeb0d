package personnel_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Personal-api/internal/application/dto"
	"github.com/jhoicas/Personal-api/internal/application/personnel"
	"github.com/jhoicas/Personal-api/internal/application/ports"
	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
	"github.com/jhoicas/Personal-api/internal/infrastructure/memory"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := personnel.NewUseCase(store, ports.StaticIdentity("rrhh"))

	reg := "M-001"
	p, err := uc.Register(ctx, dto.CreatePersonnelRequest{RegistrationNumber: &reg, FirstName: "Ana", LastName: "Ruiz"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.PersonnelStatusActive), p.Status)
	assert.False(t, p.Unregistered)
	assert.Nil(t, p.CurrentPositionID)

	_, err = uc.Register(ctx, dto.CreatePersonnelRequest{RegistrationNumber: &reg, FirstName: "Otra", LastName: "Persona"})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	eci, err := uc.Register(ctx, dto.CreatePersonnelRequest{FirstName: "Luis", LastName: "Paz"})
	require.NoError(t, err)
	assert.True(t, eci.Unregistered)

	missing := "s-404"
	_, err = uc.Register(ctx, dto.CreatePersonnelRequest{FirstName: "X", LastName: "Y", StructureID: &missing})
	require.ErrorIs(t, err, domain.ErrNotFound)

	logs, err := store.AuditLogs().ListByEntity(ctx, entity.EntityPersonnel, p.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "rrhh", logs[0].Actor)
}

func TestSetCumulAuthorization(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := personnel.NewUseCase(store, ports.StaticIdentity("rrhh"))

	p, err := uc.Register(ctx, dto.CreatePersonnelRequest{FirstName: "Ana", LastName: "Ruiz"})
	require.NoError(t, err)

	stale := p.Version
	got, err := uc.SetCumulAuthorization(ctx, p.ID, dto.CumulAuthorizationRequest{Authorized: true, Version: &stale})
	require.NoError(t, err)
	assert.True(t, got.CumulAuthorized)

	_, err = uc.SetCumulAuthorization(ctx, p.ID, dto.CumulAuthorizationRequest{Authorized: false, Version: &stale})
	require.ErrorIs(t, err, domain.ErrConcurrencyConflict)

	stored, err := store.Personnel().GetByID(ctx, p.ID)
	require.NoError(t, err)
	stored.CurrentPositionID = ptr("y")
	stored.CumulPositionIDs = []string{"x"}
	require.NoError(t, store.Personnel().Update(ctx, stored))

	_, err = uc.SetCumulAuthorization(ctx, p.ID, dto.CumulAuthorizationRequest{Authorized: false})
	require.ErrorIs(t, err, domain.ErrInvalidOperation)

	_, err = uc.Get(ctx, "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDirectory(t *testing.T) {
	d := personnel.NewDirectory()
	p := &entity.Personnel{Status: entity.PersonnelStatusActive}
	assert.False(t, d.HasCurrentPosition(p))
	assert.True(t, d.CanBeAssignedToPosition(p))

	p.CurrentPositionID = ptr("y")
	assert.True(t, d.HasCurrentPosition(p))
	assert.False(t, d.CanBeAssignedToPosition(p))

	p.CumulAuthorized = true
	assert.True(t, d.CanBeAssignedToPosition(p))

	p.Status = entity.PersonnelStatusOnLeave
	assert.False(t, d.CanBeAssignedToPosition(p))
}

func ptr[T any](v T) *T { return &v }

type capturePublisher struct {
	entries []*entity.AuditLog
}

func (c *capturePublisher) Publish(_ context.Context, entries []*entity.AuditLog) error {
	c.entries = append(c.entries, entries...)
	return nil
}

func TestPublicador_RecibeAltasYAutorizaciones(t *testing.T) {
	ctx := context.Background()
	pub := &capturePublisher{}
	uc := personnel.NewUseCase(memory.NewStore(), ports.StaticIdentity("rrhh")).
		WithPublisher(pub, zerolog.Nop())

	p, err := uc.Register(ctx, dto.CreatePersonnelRequest{FirstName: "Ana", LastName: "Ruiz"})
	require.NoError(t, err)
	_, err = uc.SetCumulAuthorization(ctx, p.ID, dto.CumulAuthorizationRequest{Authorized: true})
	require.NoError(t, err)

	require.Len(t, pub.entries, 2)
	assert.Equal(t, entity.AuditActionCreate, pub.entries[0].Action)
	assert.Equal(t, entity.AuditActionUpdate, pub.entries[1].Action)
	assert.Equal(t, p.ID, pub.entries[1].EntityID)
}
