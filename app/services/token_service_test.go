// Package services provides external service integrations and technical concerns like captchas, tokens, and storage
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestTokenService creates a token service for testing with symmetric key
func createTestTokenService() (TokenService, error) {
	return NewTokenService(
		15*time.Minute,
		7*24*time.Hour,
		"test-issuer",
		"test-audience",
		false, // useRSAKeys
		"",    // privateKeyPEM
		"",    // publicKeyPEM
		"test-secret-key-for-jwt-signing-32-chars", // secretKey
	)
}

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name        string
		useRSAKeys  bool
		secretKey   string
		expectError bool
	}{
		{
			name:        "valid symmetric key configuration",
			useRSAKeys:  false,
			secretKey:   "test-secret-key-for-jwt-signing-32-chars",
			expectError: false,
		},
		{
			name:        "missing secret key",
			useRSAKeys:  false,
			secretKey:   "",
			expectError: true,
		},
		{
			name:        "rsa mode without keys",
			useRSAKeys:  true,
			secretKey:   "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := NewTokenService(
				15*time.Minute,
				7*24*time.Hour,
				"test-issuer",
				"test-audience",
				tt.useRSAKeys,
				"",
				"",
				tt.secretKey,
			)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, service)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, service)
			}
		})
	}
}

func TestGenerateAndValidateTokens(t *testing.T) {
	service, err := createTestTokenService()
	require.NoError(t, err)

	accessToken, refreshToken, err := service.GenerateTokens(42)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	accessClaims, err := service.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), accessClaims.UserID)
	assert.Equal(t, "access", accessClaims.TokenType)
	assert.NotEmpty(t, accessClaims.TokenID)
	assert.True(t, accessClaims.ExpiresAt.After(time.Now()))

	refreshClaims, err := service.ValidateToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
	assert.NotEqual(t, accessClaims.TokenID, refreshClaims.TokenID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	service, err := createTestTokenService()
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := service.ValidateToken(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	service, err := createTestTokenService()
	require.NoError(t, err)

	other, err := NewTokenService(
		15*time.Minute,
		7*24*time.Hour,
		"test-issuer",
		"test-audience",
		false,
		"",
		"",
		"another-secret-key-with-enough-length!!",
	)
	require.NoError(t, err)

	accessToken, _, err := other.GenerateTokens(1)
	require.NoError(t, err)

	_, err = service.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	service, err := createTestTokenService()
	require.NoError(t, err)

	accessToken, _, err := service.GenerateTokens(1)
	require.NoError(t, err)

	assert.False(t, service.IsTokenRevoked(accessToken))
	require.NoError(t, service.RevokeToken(accessToken))
	assert.True(t, service.IsTokenRevoked(accessToken))

	_, err = service.ValidateToken(accessToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshTokenRotation(t *testing.T) {
	service, err := createTestTokenService()
	require.NoError(t, err)

	_, refreshToken, err := service.GenerateTokens(7)
	require.NoError(t, err)

	newAccess, newRefresh, err := service.RefreshToken(refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)
	assert.NotEqual(t, refreshToken, newRefresh)

	claims, err := service.ValidateToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)

	// The consumed refresh token is revoked
	_, _, err = service.RefreshToken(refreshToken)
	assert.Error(t, err)
}

func TestRefreshTokenRejectsAccessTokens(t *testing.T) {
	service, err := createTestTokenService()
	require.NoError(t, err)

	accessToken, _, err := service.GenerateTokens(7)
	require.NoError(t, err)

	_, _, err = service.RefreshToken(accessToken)
	assert.Error(t, err)
}
