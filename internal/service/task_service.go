package service

import (
	"context"
	"fmt"

	"task-api/internal/dto"
	"task-api/internal/models"
	"task-api/internal/repository"
)

// TaskService tasks, task categories and favorites
type TaskService struct {
	taskRepo     *repository.TaskRepository
	userRepo     *repository.UserRepository
	categoryRepo *repository.CategoryRepository
}

// NewTaskService creates a TaskService
func NewTaskService(
	taskRepo *repository.TaskRepository,
	userRepo *repository.UserRepository,
	categoryRepo *repository.CategoryRepository,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
	}
}

// List returns the caller's tasks, high priority first
func (s *TaskService) List(ctx context.Context, userID uint) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListAll returns every user's tasks, high priority first
func (s *TaskService) ListAll(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListByUser returns the tasks owned by userID in creation order
func (s *TaskService) ListByUser(ctx context.Context, userID uint) ([]models.Task, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, notFound(err, ErrUserNotFound, "get user")
	}
	tasks, err := s.taskRepo.ListByUserIDUnordered(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a task by id. Any authenticated user may view any task.
func (s *TaskService) Get(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound, "get task")
	}
	return task, nil
}

// Create creates a task owned by userID
func (s *TaskService) Create(ctx context.Context, userID uint, req *dto.CreateTaskRequest) (*models.Task, error) {
	task := &models.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.Priority(req.Priority),
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Update applies the present fields. Only the owner may update.
func (s *TaskService) Update(ctx context.Context, userID, id uint, req *dto.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrNotTaskOwner
	}

	if err := s.taskRepo.Update(ctx, task, req.Updates()); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes a task. Ownership is not checked: any authenticated user
// may delete any task.
func (s *TaskService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// GetOwner returns the user owning the task
func (s *TaskService) GetOwner(ctx context.Context, id uint) (*models.User, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, task.UserID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "get owner")
	}
	return user, nil
}

// AddCategory links a category to a task. Linking twice is accepted.
func (s *TaskService) AddCategory(ctx context.Context, taskID, categoryID uint) error {
	if _, err := s.Get(ctx, taskID); err != nil {
		return err
	}
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return notFound(err, ErrCategoryNotFound, "get category")
	}
	if err := s.taskRepo.AttachCategory(ctx, taskID, categoryID); err != nil {
		return fmt.Errorf("attach category: %w", err)
	}
	return nil
}

// GetCategories returns the categories of a task
func (s *TaskService) GetCategories(ctx context.Context, taskID uint) ([]models.Category, error) {
	if _, err := s.Get(ctx, taskID); err != nil {
		return nil, err
	}
	categories, err := s.taskRepo.ListCategories(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// AddFavorite marks a task as favorite for userID (idempotent)
func (s *TaskService) AddFavorite(ctx context.Context, userID, taskID uint) error {
	if _, err := s.Get(ctx, taskID); err != nil {
		return err
	}
	if err := s.taskRepo.AddFavorite(ctx, userID, taskID); err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

// RemoveFavorite unlinks a favorite; not being favorited is not an error
func (s *TaskService) RemoveFavorite(ctx context.Context, userID, taskID uint) error {
	if _, err := s.Get(ctx, taskID); err != nil {
		return err
	}
	if err := s.taskRepo.RemoveFavorite(ctx, userID, taskID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// ListFavorites returns userID's favorite tasks, high priority first
func (s *TaskService) ListFavorites(ctx context.Context, userID uint) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return tasks, nil
}
