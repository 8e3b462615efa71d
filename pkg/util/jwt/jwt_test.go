package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	Init("test-secret", 30, 168)

	token, err := GenerateAccessToken("U123")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "U123", claims.UserID)
	require.Equal(t, "access_token", claims.Subject)
	require.Empty(t, claims.TokenID)
}

func TestRefreshTokenCarriesTokenID(t *testing.T) {
	Init("test-secret", 30, 168)

	token, tokenID, err := GenerateRefreshToken("U123")
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "U123", claims.UserID)
	require.Equal(t, "refresh_token", claims.Subject)
	require.Equal(t, tokenID, claims.TokenID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	Init("first-secret", 30, 168)
	token, err := GenerateAccessToken("U123")
	require.NoError(t, err)

	Init("second-secret", 30, 168)
	_, err = ParseToken(token)
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	Init("test-secret", -1, 168)
	token, err := GenerateAccessToken("U123")
	require.NoError(t, err)

	_, err = ParseToken(token)
	require.Error(t, err)
}
