package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atriumlabs/atrium/backend/internal/config"
	"github.com/atriumlabs/atrium/backend/internal/user"
)

// Token types carried in the JWT claims. Refresh tokens are never
// accepted where an access token is required.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Config represents authentication configuration
type Config struct {
	JWT struct {
		Secret          string
		AccessTokenTTL  time.Duration
		RefreshTokenTTL time.Duration
	}
	Password struct {
		MinLength  int
		MaxLength  int
		MinDigits  int
		MinSymbols int
	}
}

// NewConfigFromAuthConfig creates an auth.Config from config.AuthConfig
func NewConfigFromAuthConfig(cfg *config.AuthConfig) *Config {
	authConfig := &Config{}
	authConfig.JWT.Secret = cfg.JWT.Secret
	authConfig.JWT.AccessTokenTTL = cfg.JWT.AccessTokenTTL
	authConfig.JWT.RefreshTokenTTL = cfg.JWT.RefreshTokenTTL

	authConfig.Password.MinLength = 8  // Default password requirements
	authConfig.Password.MaxLength = 72 // bcrypt max length
	authConfig.Password.MinDigits = 1
	authConfig.Password.MinSymbols = 1

	return authConfig
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"fullName" binding:"max=100"`
}

// LoginRequest represents the login request payload. Identifier accepts
// either the email or the username.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RefreshRequest represents the token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest represents the logout payload
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LoginResponse represents the login and refresh response
type LoginResponse struct {
	User         *user.User `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	TokenType    string     `json:"tokenType"`
	ExpiresIn    int        `json:"expiresIn"`
}

// TokenClaims represents the JWT claims
type TokenClaims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	TokenType string `json:"tokenType"`
	jwt.RegisteredClaims
}
