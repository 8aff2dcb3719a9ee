package handler

import (
	"task-api/internal/dto"
	"task-api/internal/service"
	"task-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// CategoryHandler category endpoints
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create creates a category
// @Router /api/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, "Category created successfully", category)
}

// GetTasks returns the tasks in category :id
// @Router /api/categories/tasks/{id} [get]
func (h *CategoryHandler) GetTasks(c *gin.Context) {
	id, ok := paramID(c, "id", service.ErrCategoryNotFound)
	if !ok {
		return
	}

	tasks, err := h.categoryService.GetTasks(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, tasks)
}
