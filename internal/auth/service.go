package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/atriumlabs/atrium/backend/internal/apperror"
	"github.com/atriumlabs/atrium/backend/internal/cache"
	"github.com/atriumlabs/atrium/backend/internal/user"
)

// blacklistPrefix keys revoked access tokens in Redis by JWT ID.
const blacklistPrefix = "auth:blacklist:"

// EventUserRegistered is published when a new account is created.
const EventUserRegistered = "user.registered"

// Service handles authentication-related business logic
type Service struct {
	users  *user.Repository
	tokens *RefreshTokenRepository
	jwt    TokenService
	cache  cache.Service
	events EventPublisher
	logger Logger
	config *Config
}

// NewService creates a new auth service instance
func NewService(users *user.Repository, tokens *RefreshTokenRepository, jwt TokenService, cacheService cache.Service, events EventPublisher, logger Logger, config *Config) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		jwt:    jwt,
		cache:  cacheService,
		events: events,
		logger: logger,
		config: config,
	}
}

// Register creates a new user account. Duplicate email or username is a
// business error; weak passwords are validation errors.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	if err := validatePassword(req.Password, &s.config.Password); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, apperror.NewBusiness(apperror.ErrMsgEmailTaken)
	}

	existing, err = s.users.GetByUsername(req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, apperror.NewBusiness(apperror.ErrMsgUsernameTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		FullName: req.FullName,
		IsActive: true,
	}
	if err := s.users.Create(u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.LogInfo("User registered", map[string]interface{}{
		"userID":   u.ID,
		"username": u.Username,
	})

	if s.events != nil {
		if err := s.events.PublishUserEvent(ctx, EventUserRegistered, u.ID, map[string]interface{}{
			"username": u.Username,
			"email":    u.Email,
		}); err != nil {
			s.logger.LogWarn("Failed to publish registration event", map[string]interface{}{
				"userID": u.ID,
				"error":  err.Error(),
			})
		}
	}

	return u, nil
}

// Login authenticates a user by email or username and issues a token
// pair. The same authentication error is returned for an unknown
// identifier and a wrong password.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.users.GetByIdentifier(req.Identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return nil, apperror.NewAuthentication(apperror.ErrMsgInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuthentication(apperror.ErrMsgInvalidCredentials)
	}

	if !u.IsActive {
		return nil, apperror.NewAuthentication(apperror.ErrMsgAccountDisabled)
	}

	if err := s.users.UpdateLastLogin(u.ID); err != nil {
		s.logger.LogWarn("Failed to stamp last login", map[string]interface{}{
			"userID": u.ID,
			"error":  err.Error(),
		})
	}

	return s.issueTokens(u)
}

// Refresh validates a refresh token and rotates it, issuing a new token
// pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.NewAuthentication(apperror.ErrMsgInvalidToken).WithCause(err)
	}

	stored, err := s.tokens.GetValidByToken(refreshToken)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Get(stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil || !u.IsActive {
		return nil, apperror.NewAuthentication(apperror.ErrMsgAccountDisabled)
	}
	if u.ID.String() != claims.UserID {
		return nil, apperror.NewAuthentication(apperror.ErrMsgInvalidToken)
	}

	// Rotate: the presented refresh token is single-use.
	if err := s.tokens.RevokeByToken(refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(u)
}

// Logout revokes the refresh token and blacklists the access token in
// Redis for its remaining lifetime.
func (s *Service) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if claims, err := s.jwt.ValidateAccessToken(accessToken); err == nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl > 0 {
			if err := s.cache.Set(ctx, blacklistPrefix+claims.ID, "1", ttl); err != nil {
				s.logger.LogWarn("Failed to blacklist access token", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	if err := s.tokens.RevokeByToken(refreshToken); err != nil {
		// An already-revoked or unknown refresh token leaves the same
		// state: logging out twice succeeds.
		if appErr, ok := apperror.As(err); ok && appErr.Kind == apperror.KindAuthentication {
			return nil
		}
		return err
	}
	return nil
}

// CurrentUser resolves an access token to its active user, rejecting
// blacklisted tokens and disabled accounts.
func (s *Service) CurrentUser(ctx context.Context, accessToken string) (*user.User, error) {
	claims, err := s.jwt.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, apperror.NewAuthentication(apperror.ErrMsgInvalidToken).WithCause(err)
	}

	blacklisted, err := s.cache.Exists(ctx, blacklistPrefix+claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if blacklisted {
		return nil, apperror.NewAuthentication(apperror.ErrMsgTokenRevoked)
	}

	userID, err := parseUserID(claims.UserID)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return nil, apperror.NewAuthentication(apperror.ErrMsgInvalidToken).
			WithDetail("token subject no longer exists")
	}
	if !u.IsActive {
		return nil, apperror.NewAuthentication(apperror.ErrMsgAccountDisabled)
	}

	return u, nil
}

func (s *Service) issueTokens(u *user.User) (*LoginResponse, error) {
	accessToken, err := s.jwt.GenerateAccessToken(u)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(u)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiresAt := time.Now().Add(s.config.JWT.RefreshTokenTTL)
	if err := s.tokens.Create(u.ID, refreshToken, expiresAt); err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:         u,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(s.config.JWT.AccessTokenTTL.Seconds()),
	}, nil
}
