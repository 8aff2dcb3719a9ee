package service

import (
	"context"
	"fmt"

	"task-api/internal/dto"
	"task-api/internal/models"
	"task-api/internal/repository"
)

// CategoryService categories
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
}

// NewCategoryService creates a CategoryService
func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a category. Names are not required to be unique.
func (s *CategoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{Name: req.Name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// GetTasks returns the tasks linked to a category
func (s *CategoryService) GetTasks(ctx context.Context, categoryID uint) ([]models.Task, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, notFound(err, ErrCategoryNotFound, "get category")
	}
	tasks, err := s.categoryRepo.ListTasks(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}
