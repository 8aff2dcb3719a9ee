package repository

import (
	"context"
	"errors"
	"testing"

	"task-api/internal/models"
	"task-api/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "user", Email: email, PasswordHash: "x"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func seedTask(t *testing.T, repo *TaskRepository, userID uint, title string, p models.Priority) *models.Task {
	t.Helper()
	task := &models.Task{UserID: userID, Title: title, Description: "d", Priority: p}
	require.NoError(t, repo.Create(context.Background(), task))
	return task
}

func titles(tasks []models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Title)
	}
	return out
}

func TestTaskRepository_ListByUserIDOrdersByPriority(t *testing.T) {
	db := testdb.New(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	seedTask(t, repo, alice.ID, "low-1", models.PriorityLow)
	seedTask(t, repo, alice.ID, "high-1", models.PriorityHigh)
	seedTask(t, repo, bob.ID, "bob-high", models.PriorityHigh)
	seedTask(t, repo, alice.ID, "medium-1", models.PriorityMedium)
	seedTask(t, repo, alice.ID, "high-2", models.PriorityHigh)
	seedTask(t, repo, alice.ID, "low-2", models.PriorityLow)

	tasks, err := repo.ListByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"high-1", "high-2", "medium-1", "low-1", "low-2"}, titles(tasks))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"high-1", "bob-high", "high-2", "medium-1", "low-1", "low-2"}, titles(all))

	natural, err := repo.ListByUserIDUnordered(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"low-1", "high-1", "medium-1", "high-2", "low-2"}, titles(natural))
}

func TestTaskRepository_UnknownPrioritySortsLast(t *testing.T) {
	db := testdb.New(t)
	repo := NewTaskRepository(db)
	user := seedUser(t, db, "u@example.com")

	seedTask(t, repo, user.ID, "odd", models.Priority("someday"))
	seedTask(t, repo, user.ID, "low", models.PriorityLow)

	tasks, err := repo.ListByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"low", "odd"}, titles(tasks))
}

func TestTaskRepository_Favorites(t *testing.T) {
	db := testdb.New(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "u@example.com")
	low := seedTask(t, repo, user.ID, "low", models.PriorityLow)
	high := seedTask(t, repo, user.ID, "high", models.PriorityHigh)

	require.NoError(t, repo.AddFavorite(ctx, user.ID, low.ID))
	require.NoError(t, repo.AddFavorite(ctx, user.ID, low.ID))
	require.NoError(t, repo.AddFavorite(ctx, user.ID, high.ID))

	favs, err := repo.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "low"}, titles(favs))

	require.NoError(t, repo.RemoveFavorite(ctx, user.ID, low.ID))
	require.NoError(t, repo.RemoveFavorite(ctx, user.ID, low.ID))

	favs, err = repo.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"high"}, titles(favs))
}

func TestTaskRepository_AttachCategoryIsIdempotent(t *testing.T) {
	db := testdb.New(t)
	repo := NewTaskRepository(db)
	categories := NewCategoryRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "u@example.com")
	task := seedTask(t, repo, user.ID, "t", models.PriorityMedium)
	work := &models.Category{Name: "work"}
	require.NoError(t, categories.Create(ctx, work))

	require.NoError(t, repo.AttachCategory(ctx, task.ID, work.ID))
	require.NoError(t, repo.AttachCategory(ctx, task.ID, work.ID))

	linked, err := repo.ListCategories(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, "work", linked[0].Name)

	tasks, err := categories.ListTasks(ctx, work.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, titles(tasks))
}

func TestTaskRepository_DeleteRemovesPivots(t *testing.T) {
	db := testdb.New(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "u@example.com")
	task := seedTask(t, repo, user.ID, "t", models.PriorityLow)
	category := &models.Category{Name: "c"}
	require.NoError(t, NewCategoryRepository(db).Create(ctx, category))
	require.NoError(t, repo.AttachCategory(ctx, task.ID, category.ID))
	require.NoError(t, repo.AddFavorite(ctx, user.ID, task.ID))

	require.NoError(t, repo.Delete(ctx, task.ID))

	_, err := repo.GetByID(ctx, task.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var pivots int64
	require.NoError(t, db.Model(&models.TaskCategory{}).Count(&pivots).Error)
	assert.Zero(t, pivots)
	require.NoError(t, db.Model(&models.TaskFavorite{}).Count(&pivots).Error)
	assert.Zero(t, pivots)
}

func TestTaskRepository_Update(t *testing.T) {
	db := testdb.New(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "u@example.com")
	task := seedTask(t, repo, user.ID, "old", models.PriorityLow)

	require.NoError(t, repo.Update(ctx, task, map[string]interface{}{"title": "new"}))
	assert.Equal(t, "new", task.Title)
	assert.Equal(t, models.PriorityLow, task.Priority)
}

func TestProfileRepository_OnePerUser(t *testing.T) {
	db := testdb.New(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "u@example.com")

	require.NoError(t, repo.Create(ctx, &models.Profile{UserID: user.ID, Phone: "123456"}))
	err := repo.Create(ctx, &models.Profile{UserID: user.ID, Phone: "654321"})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}
