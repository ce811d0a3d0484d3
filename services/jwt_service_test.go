package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminJWTRoundTrip(t *testing.T) {
	require.NoError(t, InitJWTService("test-secret"))

	token, err := GenerateAdminJWT("admin-1", "ops@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyAdminJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "ops@example.com", claims.Email)
	assert.Equal(t, "product-finder", claims.Issuer)
}

func TestGenerateAdminJWT_RequiresIdentity(t *testing.T) {
	require.NoError(t, InitJWTService("test-secret"))

	_, err := GenerateAdminJWT("", "ops@example.com")
	assert.Error(t, err)

	_, err = GenerateAdminJWT("admin-1", "")
	assert.Error(t, err)
}

func TestVerifyAdminJWT_RejectsWrongSecret(t *testing.T) {
	require.NoError(t, InitJWTService("secret-a"))
	token, err := GenerateAdminJWT("admin-1", "ops@example.com")
	require.NoError(t, err)

	require.NoError(t, InitJWTService("secret-b"))
	_, err = VerifyAdminJWT(token)
	assert.Error(t, err)
}

func TestVerifyAdminJWT_RejectsGarbage(t *testing.T) {
	require.NoError(t, InitJWTService("test-secret"))

	_, err := VerifyAdminJWT("not.a.token")
	assert.Error(t, err)
}

func TestInitJWTService_EmptySecret(t *testing.T) {
	assert.Error(t, InitJWTService(""))
}
