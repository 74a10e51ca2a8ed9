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

const (
	categoryListCacheKey = "categories:all"
	categoryCacheTTL     = 10 * time.Minute
)

// CategoryInput carries the fields of a category write. Nil fields are
// left unchanged on update.
type CategoryInput struct {
	Name        *string
	Description *string
	Color       *string
}

// CategoryService handles category management.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, in CategoryInput) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, in CategoryInput) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) (*model.Category, error)
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache *cache.Client
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, cache *cache.Client) CategoryService {
	return &categoryService{repo: repo, cache: cache}
}

// List returns all categories, served from cache when possible.
func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	if s.cache.GetJSON(ctx, categoryListCacheKey, &cached) {
		return cached, nil
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	s.cache.SetJSON(ctx, categoryListCacheKey, categories, categoryCacheTTL)
	return categories, nil
}

// Create adds a category; the name must be unused.
func (s *categoryService) Create(ctx context.Context, in CategoryInput) (*model.Category, error) {
	if in.Name == nil || *in.Name == "" {
		return nil, apperrors.Validation("Validation failed", apperrors.FieldError{Field: "name", Message: "is required"})
	}
	if err := s.ensureNameFree(ctx, *in.Name, uuid.Nil); err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:        *in.Name,
		Description: in.Description,
		Color:       model.DefaultCategoryColor,
	}
	if in.Color != nil {
		category.Color = *in.Color
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.invalidate(ctx)
	return category, nil
}

// Update applies the supplied fields to an existing category.
func (s *categoryService) Update(ctx context.Context, id uuid.UUID, in CategoryInput) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	if in.Name != nil && *in.Name != category.Name {
		if err := s.ensureNameFree(ctx, *in.Name, category.ID); err != nil {
			return nil, err
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = in.Description
	}
	if in.Color != nil {
		category.Color = *in.Color
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.invalidate(ctx)
	return category, nil
}

// Delete removes a category; its tickets lose the reference.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("delete category: %w", err)
	}

	s.invalidate(ctx)
	return category, nil
}

func (s *categoryService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name)
	switch {
	case err == nil && existing.ID != self:
		return apperrors.ErrCategoryNameTaken
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("check category name: %w", err)
	}
	return nil
}

func (s *categoryService) invalidate(ctx context.Context) {
	_ = s.cache.Delete(ctx, categoryListCacheKey)
}
