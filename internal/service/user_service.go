package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ticketdesk/internal/cache"
	apperrors "ticketdesk/internal/errors"
	"ticketdesk/internal/model"
	"ticketdesk/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes user lookups.
type UserService interface {
	// GetUser resolves an identity; results are cached.
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	// ViewUser returns a profile the actor is allowed to see.
	ViewUser(ctx context.Context, actor *model.User, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}

// ViewUser lets users read their own profile and admins read any profile.
// The permission check precedes the lookup so existence is not revealed.
func (s *userService) ViewUser(ctx context.Context, actor *model.User, id uuid.UUID) (*model.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, apperrors.ErrForbidden
	}
	return s.GetUser(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
