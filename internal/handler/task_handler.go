package handler

import (
	"task-api/internal/dto"
	"task-api/internal/middleware"
	"task-api/internal/service"
	"task-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// TaskHandler task, task category and favorite endpoints
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler creates a TaskHandler
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List returns the caller's tasks, high priority first
// @Router /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	tasks, err := h.taskService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, tasks)
}

// ListAll returns all tasks (admin only)
// @Router /api/tasks/all [get]
func (h *TaskHandler) ListAll(c *gin.Context) {
	tasks, err := h.taskService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, tasks)
}

// ListByUser returns the tasks owned by user :id
// @Router /api/user/tasks/{id} [get]
func (h *TaskHandler) ListByUser(c *gin.Context) {
	userID, ok := paramID(c, "id", service.ErrUserNotFound)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, tasks)
}

// Get returns task :id
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", service.ErrTaskNotFound)
	if !ok {
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, task)
}

// Create creates a task owned by the caller
// @Router /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, "Task created successfully", task)
}

// Update applies a partial update; owner only
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	id, ok := paramID(c, "id", service.ErrTaskNotFound)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && !emptyBody(err) {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Task updated successfully", task)
}

// Delete removes task :id
// @Router /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", service.ErrTaskNotFound)
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContent(c)
}

// GetOwner returns the user owning task :id
// @Router /api/tasks/user/{id} [get]
func (h *TaskHandler) GetOwner(c *gin.Context) {
	id, ok := paramID(c, "id", service.ErrTaskNotFound)
	if !ok {
		return
	}

	user, err := h.taskService.GetOwner(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, dto.NewUserInfo(user))
}

// AddCategory links a category to task :id
// @Router /api/tasks/categories/{id} [post]
func (h *TaskHandler) AddCategory(c *gin.Context) {
	id, ok := paramID(c, "id", service.ErrTaskNotFound)
	if !ok {
		return
	}

	var req dto.AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.taskService.AddCategory(c.Request.Context(), id, req.CategoryID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Categories added successfully", nil)
}

// GetCategories returns the categories of task :id
// @Router /api/tasks/categories/{id} [get]
func (h *TaskHandler) GetCategories(c *gin.Context) {
	id, ok := paramID(c, "id", service.ErrTaskNotFound)
	if !ok {
		return
	}

	categories, err := h.taskService.GetCategories(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, categories)
}

// AddFavorite adds task :id to the caller's favorites
// @Router /api/tasks/{id}/favorite [post]
func (h *TaskHandler) AddFavorite(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	id, ok := paramID(c, "id", service.ErrTaskNotFound)
	if !ok {
		return
	}

	if err := h.taskService.AddFavorite(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Task added to favorites", nil)
}

// RemoveFavorite removes task :id from the caller's favorites
// @Router /api/tasks/{id}/favorite [delete]
func (h *TaskHandler) RemoveFavorite(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	id, ok := paramID(c, "id", service.ErrTaskNotFound)
	if !ok {
		return
	}

	if err := h.taskService.RemoveFavorite(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Task removed from favorites", nil)
}

// ListFavorites returns the caller's favorite tasks, high priority first
// @Router /api/tasks/favorites [get]
func (h *TaskHandler) ListFavorites(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	tasks, err := h.taskService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, tasks)
}
