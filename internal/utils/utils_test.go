package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateJWT("user-42", "secret", time.Hour, "issuer")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject)
	assert.Equal(t, "issuer", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	_, err = ParseAndValidateJWT(token, "other")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseAndValidateJWT_RejectsOtherAlgorithms(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "x"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(unsigned, "secret")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("", ""))
}

func TestGenerateSecureRandomString(t *testing.T) {
	s, err := GenerateSecureRandomString(16)
	require.NoError(t, err)
	assert.Len(t, s, 32)
	_, err = GenerateSecureRandomString(0)
	assert.Error(t, err)
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.NoError(t, ValidatePasswordStrength("Secret1"))
	assert.ErrorIs(t, ValidatePasswordStrength("Ab1"), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidatePasswordStrength("secret12"), ErrPasswordTooWeak)
	assert.ErrorIs(t, ValidatePasswordStrength("SECRET12"), ErrPasswordTooWeak)
	assert.ErrorIs(t, ValidatePasswordStrength("SecretPass"), ErrPasswordTooWeak)
}
