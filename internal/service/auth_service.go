package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/classpad-app/classpad-backend/internal/config"
	"github.com/classpad-app/classpad-backend/internal/repository"
)

// Common auth errors.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenType distinguishes user vs admin tokens.
type TokenType string

const (
	TokenTypeUser  TokenType = "user"
	TokenTypeAdmin TokenType = "admin"
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	TokenType TokenType `json:"token_type"`
	UserID    string    `json:"user_id"`
}

// AuthService handles authentication, JWT, and admin session management.
// User tokens are minted by the identity provider with the shared secret;
// this service only validates them. Admin tokens are minted here.
type AuthService struct {
	cfg    *config.Config
	rdb    *redis.Client
	admins AdminStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, rdb *redis.Client, admins AdminStore) *AuthService {
	return &AuthService{cfg: cfg, rdb: rdb, admins: admins}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// LoginAdmin verifies admin credentials and returns a signed admin JWT,
// registering the session in Redis.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (string, error) {
	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("load admin: %w", err)
	}
	if err := s.CheckPassword(admin.PasswordHash, password); err != nil {
		return "", err
	}
	return s.generateAdminToken(ctx, admin.ID)
}

// generateAdminToken creates a JWT for an admin and stores its JTI as the
// single active session for that admin.
func (s *AuthService) generateAdminToken(ctx context.Context, adminID string) (string, error) {
	jti := uuid.New().String()
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		TokenType: TokenTypeAdmin,
		UserID:    adminID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	sessionKey := config.CacheKey.AdminSessionKey(adminID)
	if err := s.rdb.Set(ctx, sessionKey, jti, s.cfg.JWTExpiry).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ValidateAdminSession checks that the token's JTI matches the active
// session in Redis. A mismatch means the session was superseded.
func (s *AuthService) ValidateAdminSession(ctx context.Context, adminID, jti string) error {
	sessionKey := config.CacheKey.AdminSessionKey(adminID)
	stored, err := s.rdb.Get(ctx, sessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return errors.New("no active session")
		}
		return fmt.Errorf("check session: %w", err)
	}
	if stored != jti {
		return errors.New("session invalidated")
	}
	return nil
}
