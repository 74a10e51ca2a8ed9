package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ticketdesk/internal/model"
)

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) (*model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create creates a new category.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update saves every column of an existing category.
func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// FindByID finds a category by ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByName finds a category by its unique name.
func (r *categoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List lists all categories in creation order.
func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Delete removes a category and returns it. Tickets referencing it keep
// existing with a null category.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var deleted model.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&deleted).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Ticket{}).
			Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&deleted).Error
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
