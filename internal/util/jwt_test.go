package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTripCarriesIssuerAndUser(t *testing.T) {
	token, err := GenerateToken("s3cret", "precifix", 42, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken("s3cret", token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "precifix", claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("s3cret", "precifix", 1, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("outro-segredo", token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	now := time.Now()
	claims := &Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "precifix",
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = ParseToken("s3cret", token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseTokenRejectsNonHMACAlgorithm(t *testing.T) {
	// an unsigned token must never validate, whatever its payload claims
	claims := &Claims{UserID: 7}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken("s3cret", token)
	assert.Error(t, err)
}

func TestGenerateTokenDefaultsTTL(t *testing.T) {
	token, err := GenerateToken("s3cret", "precifix", 3, 0)
	require.NoError(t, err)

	claims, err := ParseToken("s3cret", token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}
