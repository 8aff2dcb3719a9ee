package repository

import (
	"context"

	"task-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskRepository task, task category and favorite data access
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a TaskRepository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID fetches a task by primary key
func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies column updates and reloads the task
func (r *TaskRepository) Update(ctx context.Context, task *models.Task, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	db := r.db.WithContext(ctx)
	if err := db.Model(task).Updates(updates).Error; err != nil {
		return err
	}
	return db.First(task, task.ID).Error
}

// Delete removes a task together with its pivot rows
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskFavorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
}

// ListByUserID returns the user's tasks ordered by priority
func (r *TaskRepository) ListByUserID(ctx context.Context, userID uint) ([]models.Task, error) {
	tasks := []models.Task{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(models.PriorityOrder("tasks")).
		Find(&tasks).Error
	return tasks, err
}

// ListByUserIDUnordered returns the user's tasks in insertion order
func (r *TaskRepository) ListByUserIDUnordered(ctx context.Context, userID uint) ([]models.Task, error) {
	tasks := []models.Task{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&tasks).Error
	return tasks, err
}

// ListAll returns every task ordered by priority
func (r *TaskRepository) ListAll(ctx context.Context) ([]models.Task, error) {
	tasks := []models.Task{}
	err := r.db.WithContext(ctx).Order(models.PriorityOrder("tasks")).Find(&tasks).Error
	return tasks, err
}

// AttachCategory links a category to a task. Re-attaching is a no-op.
func (r *TaskRepository) AttachCategory(ctx context.Context, taskID, categoryID uint) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.TaskCategory{TaskID: taskID, CategoryID: categoryID}).Error
}

// ListCategories returns the categories linked to a task
func (r *TaskRepository) ListCategories(ctx context.Context, taskID uint) ([]models.Category, error) {
	categories := []models.Category{}
	err := r.db.WithContext(ctx).
		Joins("JOIN task_categories ON task_categories.category_id = categories.id").
		Where("task_categories.task_id = ?", taskID).
		Order("categories.id").
		Find(&categories).Error
	return categories, err
}

// AddFavorite marks a task as favorite for a user. Adding twice is a no-op.
func (r *TaskRepository) AddFavorite(ctx context.Context, userID, taskID uint) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.TaskFavorite{UserID: userID, TaskID: taskID}).Error
}

// RemoveFavorite unlinks a favorite if present
func (r *TaskRepository) RemoveFavorite(ctx context.Context, userID, taskID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND task_id = ?", userID, taskID).
		Delete(&models.TaskFavorite{}).Error
}

// ListFavorites returns the user's favorite tasks ordered by priority
func (r *TaskRepository) ListFavorites(ctx context.Context, userID uint) ([]models.Task, error) {
	tasks := []models.Task{}
	err := r.db.WithContext(ctx).
		Joins("JOIN task_favorites ON task_favorites.task_id = tasks.id").
		Where("task_favorites.user_id = ?", userID).
		Order(models.PriorityOrder("tasks")).
		Find(&tasks).Error
	return tasks, err
}
