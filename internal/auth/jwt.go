package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/atriumlabs/atrium/backend/internal/user"
)

// JWTService implements the TokenService interface using JWT tokens
type JWTService struct {
	config *Config
}

// NewJWTService creates a new JWT token service
func NewJWTService(config *Config) TokenService {
	return &JWTService{
		config: config,
	}
}

// GenerateAccessToken generates a new JWT access token for a user
func (s *JWTService) GenerateAccessToken(u *user.User) (string, error) {
	return s.generate(u, TokenTypeAccess, s.config.JWT.AccessTokenTTL)
}

// GenerateRefreshToken generates a new JWT refresh token for a user
func (s *JWTService) GenerateRefreshToken(u *user.User) (string, error) {
	return s.generate(u, TokenTypeRefresh, s.config.JWT.RefreshTokenTTL)
}

func (s *JWTService) generate(u *user.User, tokenType string, ttl time.Duration) (string, error) {
	claims := &TokenClaims{
		UserID:    u.ID.String(),
		Email:     u.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			ID:        uuid.New().String(),
			Subject:   u.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWT.Secret))
}

// ValidateAccessToken validates a JWT access token and returns its claims
func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	return s.validate(tokenString, TokenTypeAccess)
}

// ValidateRefreshToken validates a JWT refresh token and returns its claims
func (s *JWTService) ValidateRefreshToken(tokenString string) (*TokenClaims, error) {
	return s.validate(tokenString, TokenTypeRefresh)
}

func (s *JWTService) validate(tokenString, expectedType string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWT.Secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %v", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("invalid token type: expected %s", expectedType)
	}

	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %v", err)
	}

	return claims, nil
}
