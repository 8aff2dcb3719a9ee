package dto

// CreateTaskRequest task creation payload
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority" binding:"required,oneof=high medium low"`
}

// UpdateTaskRequest partial task update; nil fields are left unchanged
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,min=1"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=high medium low"`
}

// Updates returns the whitelisted columns present in the request
func (r *UpdateTaskRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.Priority != nil {
		updates["priority"] = *r.Priority
	}
	return updates
}

// AddCategoryRequest links a category to a task
type AddCategoryRequest struct {
	CategoryID uint `json:"category_id" binding:"required,gt=0"`
}

// CreateCategoryRequest category creation payload
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}
