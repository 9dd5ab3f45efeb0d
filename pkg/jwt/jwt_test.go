package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse(t *testing.T) {
	token, err := Generate("secreto", "u-1", RoleApprover, "personal-api", 5)
	require.NoError(t, err)

	claims, err := Parse("secreto", "personal-api", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, RoleApprover, claims.Role)

	_, err = Parse("otro", "personal-api", token)
	assert.Error(t, err, "firma incorrecta")

	_, err = Parse("secreto", "otro-emisor", token)
	assert.Error(t, err, "emisor distinto")
}

func TestExpirado(t *testing.T) {
	token, err := Generate("secreto", "u-1", RoleViewer, "", -1)
	require.NoError(t, err)
	_, err = Parse("secreto", "", token)
	assert.Error(t, err)
}

func TestSecretoVacio(t *testing.T) {
	_, err := Generate("", "u-1", RoleAdmin, "", 5)
	assert.Error(t, err)
	_, err = Parse("", "", "x")
	assert.Error(t, err)
}
