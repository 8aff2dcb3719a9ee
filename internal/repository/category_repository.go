package repository

import (
	"context"

	"task-api/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository category data access
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a CategoryRepository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// GetByID fetches a category by primary key
func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListTasks returns the tasks linked to a category in insertion order
func (r *CategoryRepository) ListTasks(ctx context.Context, categoryID uint) ([]models.Task, error) {
	tasks := []models.Task{}
	err := r.db.WithContext(ctx).
		Joins("JOIN task_categories ON task_categories.task_id = tasks.id").
		Where("task_categories.category_id = ?", categoryID).
		Order("tasks.id").
		Find(&tasks).Error
	return tasks, err
}
