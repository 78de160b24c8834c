package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/atriumlabs/atrium/backend/internal/apperror"
	"github.com/atriumlabs/atrium/backend/internal/cache"
)

const (
	profileCachePrefix = "user:profile:"
	profileCacheTTL    = 5 * time.Minute
)

// cachedProfile is the cache representation of a user. It carries the
// password hash that the User JSON shape hides, so a cache-hit read
// holds every persisted column and can safely be saved back.
type cachedProfile struct {
	User
	PasswordHash string `json:"passwordHash"`
}

// Event types published on user lifecycle changes
const (
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// Service handles user-related business logic
type Service struct {
	repo   *Repository
	cache  cache.Service
	events EventPublisher
	logger Logger
}

// NewService creates a new user service instance
func NewService(repo *Repository, cacheService cache.Service, events EventPublisher, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cacheService,
		events: events,
		logger: logger,
	}
}

// Get returns a user by ID, reading through the profile cache.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	if raw, err := s.cache.Get(ctx, profileCacheKey(id)); err == nil {
		var cached cachedProfile
		// Entries without a hash are stale or malformed; fall through
		// to the repository instead of returning a partial user.
		if err := json.Unmarshal([]byte(raw), &cached); err == nil && cached.PasswordHash != "" {
			u := cached.User
			u.Password = cached.PasswordHash
			return &u, nil
		}
	}

	u, err := s.repo.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return nil, apperror.NewNotFound(apperror.ErrMsgUserNotFound).
			WithDetail(fmt.Sprintf("user %s not found", id))
	}

	s.cacheProfile(ctx, u)
	return u, nil
}

// List returns a page of users and the total record count.
func (s *Service) List(ctx context.Context, page, size int) ([]User, int64, error) {
	total, err := s.repo.Count()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	users, err := s.repo.List((page-1)*size, size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

// Update applies an update request to the given user. Changing the
// email to one already registered by another account is a business
// error.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != u.Email {
		existing, err := s.repo.GetByEmail(*req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil && existing.ID != u.ID {
			return nil, apperror.NewBusiness(apperror.ErrMsgEmailTaken)
		}
		u.Email = *req.Email
	}

	if req.FullName != nil {
		u.FullName = *req.FullName
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		u.Password = string(hash)
	}

	if err := s.repo.Update(u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.invalidateProfile(ctx, u.ID)
	s.publish(ctx, EventUserUpdated, u.ID, map[string]interface{}{"email": u.Email})

	return u, nil
}

// AdminUpdate applies an administrative update, including activation
// and superuser flags.
func (s *Service) AdminUpdate(ctx context.Context, id uuid.UUID, req AdminUpdateRequest) (*User, error) {
	u, err := s.Update(ctx, id, req.UpdateRequest)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.IsActive != nil && *req.IsActive != u.IsActive {
		u.IsActive = *req.IsActive
		changed = true
	}
	if req.IsSuperuser != nil && *req.IsSuperuser != u.IsSuperuser {
		u.IsSuperuser = *req.IsSuperuser
		changed = true
	}

	if changed {
		if err := s.repo.Update(u); err != nil {
			return nil, fmt.Errorf("failed to update user flags: %w", err)
		}
		s.invalidateProfile(ctx, u.ID)
	}

	return u, nil
}

// Delete soft-deletes a user and publishes a deletion event.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	u, err := s.repo.Get(id)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return apperror.NewNotFound(apperror.ErrMsgUserNotFound).
			WithDetail(fmt.Sprintf("user %s not found", id))
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.invalidateProfile(ctx, id)
	s.publish(ctx, EventUserDeleted, id, nil)

	return nil
}

// SetAvatar stores the avatar object URL on the user profile.
func (s *Service) SetAvatar(ctx context.Context, id uuid.UUID, url string) (*User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	u.AvatarURL = url
	if err := s.repo.Update(u); err != nil {
		return nil, fmt.Errorf("failed to save avatar: %w", err)
	}

	s.invalidateProfile(ctx, id)
	return u, nil
}

func (s *Service) cacheProfile(ctx context.Context, u *User) {
	payload, err := json.Marshal(cachedProfile{User: *u, PasswordHash: u.Password})
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, profileCacheKey(u.ID), payload, profileCacheTTL); err != nil {
		s.logger.LogWarn("Failed to cache user profile", map[string]interface{}{
			"userID": u.ID,
			"error":  err.Error(),
		})
	}
}

func (s *Service) invalidateProfile(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, profileCacheKey(id)); err != nil {
		s.logger.LogWarn("Failed to invalidate user profile cache", map[string]interface{}{
			"userID": id,
			"error":  err.Error(),
		})
	}
}

func (s *Service) publish(ctx context.Context, eventType string, id uuid.UUID, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishUserEvent(ctx, eventType, id, payload); err != nil {
		s.logger.LogWarn("Failed to publish user event", map[string]interface{}{
			"eventType": eventType,
			"userID":    id,
			"error":     err.Error(),
		})
	}
}

func profileCacheKey(id uuid.UUID) string {
	return profileCachePrefix + id.String()
}
