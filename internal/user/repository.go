package user

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles user storage and retrieval
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new user repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get retrieves a user by ID. Returns (nil, nil) when no user exists.
func (r *Repository) Get(id uuid.UUID) (*User, error) {
	var u User
	err := r.db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail retrieves a user by email. Returns (nil, nil) when no user exists.
func (r *Repository) GetByEmail(email string) (*User, error) {
	return r.getBy("email = ?", email)
}

// GetByUsername retrieves a user by username. Returns (nil, nil) when no user exists.
func (r *Repository) GetByUsername(username string) (*User, error) {
	return r.getBy("username = ?", username)
}

// GetByIdentifier retrieves a user by email or username.
func (r *Repository) GetByIdentifier(identifier string) (*User, error) {
	return r.getBy("email = ? OR username = ?", identifier, identifier)
}

func (r *Repository) getBy(query string, args ...interface{}) (*User, error) {
	var u User
	err := r.db.Where(query, args...).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create stores a new user
func (r *Repository) Create(u *User) error {
	return r.db.Create(u).Error
}

// Update persists changes to an existing user
func (r *Repository) Update(u *User) error {
	return r.db.Save(u).Error
}

// Delete soft-deletes a user
func (r *Repository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns a page of users ordered by creation time
func (r *Repository) List(offset, limit int) ([]User, error) {
	var users []User
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

// Count returns the total number of users
func (r *Repository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&User{}).Count(&total).Error
	return total, err
}

// UpdateLastLogin stamps the user's last login time
func (r *Repository) UpdateLastLogin(id uuid.UUID) error {
	return r.db.Model(&User{}).Where("id = ?", id).Update("last_login_at", gorm.Expr("NOW()")).Error
}
