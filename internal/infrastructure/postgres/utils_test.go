package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert position: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("conexión cerrada")))
}

func TestNotDeleted(t *testing.T) {
	assert.Equal(t, "deleted_at IS NULL", notDeleted(""))
	assert.Equal(t, "p.deleted_at IS NULL", notDeleted("p"))
}

func TestStrictEnum(t *testing.T) {
	st, err := strictEnum("status", "EXECUTED", entity.ParseMovementStatus)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusExecuted, st)

	_, err = strictEnum("status", "ARCHIVED", entity.ParseMovementStatus)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columna status")
}

func TestNullableText(t *testing.T) {
	assert.Nil(t, nullableText(""))
	require.NotNil(t, nullableText("RES-1"))
	assert.Equal(t, "RES-1", textOrEmpty(nullableText("RES-1")))
	assert.Equal(t, "", textOrEmpty(nil))
}
