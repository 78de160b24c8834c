package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User model definition with account and profile fields
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string         `gorm:"uniqueIndex;not null" json:"username"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	Password    string         `gorm:"not null" json:"-"` // Password hash, not exposed in JSON
	FullName    string         `json:"fullName"`
	AvatarURL   string         `json:"avatarUrl,omitempty"`
	IsActive    bool           `gorm:"default:true" json:"isActive"`
	IsSuperuser bool           `gorm:"default:false" json:"isSuperuser"`
	LastLoginAt *time.Time     `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook for User model
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = time.Now()
	}
	return nil
}

// BeforeUpdate hook for User model
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
