package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placement/internal/pkg/apperrors"
)

func newTestJWT(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "unit-secret", AccessTokenExp: exp, TokenIssuer: "placement-test"})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestJWT(time.Hour)
	id := uuid.New()

	token, expiresIn, err := svc.GenerateToken(id, "student")
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	got, err := svc.ValidateAndExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	decoded, err := DecodeSubject(token)
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestValidateRejects(t *testing.T) {
	id := uuid.New()

	t.Run("expired", func(t *testing.T) {
		token, _, err := newTestJWT(-time.Minute).GenerateToken(id, "admin")
		require.NoError(t, err)
		_, err = newTestJWT(time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "placement-test"}).
			GenerateToken(id, "admin")
		require.NoError(t, err)
		_, err = newTestJWT(time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, _, err := NewJWTService(JWTConfig{SecretKey: "unit-secret", AccessTokenExp: time.Hour, TokenIssuer: "elsewhere"}).
			GenerateToken(id, "admin")
		require.NoError(t, err)
		_, err = newTestJWT(time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := newTestJWT(time.Hour).ValidateAndExtractSubject("")
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	_, err = ExtractBearerToken("Basic dXNlcjpwYXNz")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", hash)
	assert.True(t, CheckPassword(hash, "s3cretpass"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
