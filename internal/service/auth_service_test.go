package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpad-app/classpad-backend/internal/config"
)

func newAuthFixture() *AuthService {
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4, // Minimum cost keeps the tests fast.
	}
	return NewAuthService(cfg, nil, nil)
}

func signTestToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestHashAndCheckPassword(t *testing.T) {
	svc := newAuthFixture()

	hash, err := svc.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, svc.CheckPassword(hash, "correct horse battery"))
	assert.ErrorIs(t, svc.CheckPassword(hash, "wrong password"), ErrInvalidCredentials)
}

func TestValidateToken(t *testing.T) {
	svc := newAuthFixture()

	now := time.Now()
	tokenStr := signTestToken(t, "test-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			Subject:   "admin-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		TokenType: TokenTypeAdmin,
		UserID:    "admin-1",
	})

	claims, err := svc.ValidateToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAdmin, claims.TokenType)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, "jti-1", claims.ID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newAuthFixture()

	tokenStr := signTestToken(t, "other-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TokenType: TokenTypeUser,
		UserID:    "user-1",
	})

	_, err := svc.ValidateToken(tokenStr)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newAuthFixture()

	tokenStr := signTestToken(t, "test-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		TokenType: TokenTypeUser,
		UserID:    "user-1",
	})

	_, err := svc.ValidateToken(tokenStr)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newAuthFixture()

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
