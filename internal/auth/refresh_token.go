package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atriumlabs/atrium/backend/internal/apperror"
)

// RefreshToken model for storing refresh tokens
type RefreshToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	Token     string     `gorm:"uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt"`
	RevokedAt *time.Time `json:"revokedAt,omitempty"`
}

// BeforeCreate hook for RefreshToken model
func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	return nil
}

// RefreshTokenRepository handles refresh token storage and retrieval
type RefreshTokenRepository struct {
	db     *gorm.DB
	logger Logger
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB, logger Logger) *RefreshTokenRepository {
	return &RefreshTokenRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new refresh token
func (r *RefreshTokenRepository) Create(userID uuid.UUID, token string, expiresAt time.Time) error {
	var count int64
	if err := r.db.Model(&RefreshToken{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return r.logger.LogError(err, "Error checking existing token")
	}
	if count > 0 {
		return apperror.NewConflict("Refresh token already exists")
	}

	refreshToken := RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}

	if err := r.db.Create(&refreshToken).Error; err != nil {
		return r.logger.LogError(err, "Failed to create refresh token")
	}

	r.logger.LogInfo("Created refresh token", map[string]interface{}{
		"userID":    userID,
		"expiresAt": expiresAt,
	})
	return nil
}

// GetValidByToken retrieves a refresh token that is neither revoked nor
// expired.
func (r *RefreshTokenRepository) GetValidByToken(token string) (*RefreshToken, error) {
	var refreshToken RefreshToken
	err := r.db.Where("token = ? AND revoked_at IS NULL AND expires_at > ?", token, time.Now()).First(&refreshToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewAuthentication(apperror.ErrMsgInvalidToken).
				WithDetail("refresh token not found, expired or revoked")
		}
		r.logger.LogError(err, "Error retrieving refresh token")
		return nil, err
	}
	return &refreshToken, nil
}

// RevokeByToken revokes a refresh token
func (r *RefreshTokenRepository) RevokeByToken(token string) error {
	result := r.db.Model(&RefreshToken{}).
		Where("token = ? AND revoked_at IS NULL", token).
		Update("revoked_at", time.Now())

	if result.Error != nil {
		return r.logger.LogError(result.Error, "Failed to revoke refresh token")
	}

	if result.RowsAffected == 0 {
		return apperror.NewAuthentication(apperror.ErrMsgTokenRevoked).
			WithDetail("token not found or already revoked")
	}

	return nil
}

// RevokeAllUserTokens revokes all refresh tokens for a user
func (r *RefreshTokenRepository) RevokeAllUserTokens(userID uuid.UUID) error {
	result := r.db.Model(&RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now())

	if result.Error != nil {
		return r.logger.LogError(result.Error, "Failed to revoke all user tokens")
	}

	r.logger.LogInfo("Revoked all user tokens", map[string]interface{}{
		"userID":        userID,
		"tokensRevoked": result.RowsAffected,
	})
	return nil
}

// DeleteExpired deletes all expired or revoked refresh tokens
func (r *RefreshTokenRepository) DeleteExpired() error {
	result := r.db.Where("expires_at < ? OR revoked_at IS NOT NULL", time.Now()).
		Delete(&RefreshToken{})

	if result.Error != nil {
		return r.logger.LogError(result.Error, "Failed to delete expired tokens")
	}

	r.logger.LogInfo("Deleted expired tokens", map[string]interface{}{
		"tokensDeleted": result.RowsAffected,
	})
	return nil
}
