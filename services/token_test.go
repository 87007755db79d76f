package services

import (
	"os"
	"testing"
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()
	os.Exit(m.Run())
}

func TestGenerateAndParseToken(t *testing.T) {
	tokenString, err := GenerateToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := ParseToken(tokenString)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "docdex", claims["iss"])
	_, hasType := claims["type"]
	assert.False(t, hasType)

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Greater(t, int64(exp), time.Now().Unix())
}

func TestGenerateRefreshTokenCarriesTypeClaim(t *testing.T) {
	tokenString, err := GenerateRefreshToken("user-123")
	require.NoError(t, err)

	claims, err := ParseToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims["type"])
	assert.Equal(t, "user-123", claims["user_id"])
}

func TestParseTokenRejectsForgedSignature(t *testing.T) {
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"iss":     "docdex",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := forged.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = ParseToken(tokenString)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"iss":     "docdex",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	tokenString, err := expired.SignedString([]byte(utils.JWTSecretKey))
	require.NoError(t, err)

	_, err = ParseToken(tokenString)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}
