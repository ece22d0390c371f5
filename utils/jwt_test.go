package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadforge/config"
)

func TestJWTRoundTrip(t *testing.T) {
	config.AppConfig.EncryptionKey = "test-encryption-key"

	access, refresh, err := GenerateJWTTokens("alex@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := ParseJWTToken(access)
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", claims.Email)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	config.AppConfig.EncryptionKey = "test-encryption-key"

	access, _, err := GenerateJWTTokens("alex@example.com")
	require.NoError(t, err)

	_, err = ParseJWTToken(access + "x")
	assert.Error(t, err)

	_, err = ParseJWTToken("not-a-token")
	assert.Error(t, err)
}

func TestRefreshTokensIssuesNewPair(t *testing.T) {
	config.AppConfig.EncryptionKey = "test-encryption-key"

	_, refresh, err := GenerateJWTTokens("alex@example.com")
	require.NoError(t, err)

	access2, refresh2, err := RefreshTokens(refresh)
	require.NoError(t, err)

	claims, err := ParseJWTToken(access2)
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", claims.Email)

	_, err = ParseJWTToken(refresh2)
	assert.NoError(t, err)
}
