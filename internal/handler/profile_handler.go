package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"task-api/internal/dto"
	"task-api/internal/middleware"
	"task-api/internal/service"
	"task-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// ProfileHandler profile endpoints
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a ProfileHandler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Show returns the caller's own profile. The :id path segment is accepted
// but not used for the lookup; see GetByUser for lookups by user id.
// @Router /api/profiles/{id} [get]
func (h *ProfileHandler) Show(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	profile, err := h.profileService.Show(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, profile)
}

// GetByUser returns the profile of user :id (null when none was created)
// @Router /api/profiles/user/{id} [get]
func (h *ProfileHandler) GetByUser(c *gin.Context) {
	userID, ok := paramID(c, "id", service.ErrUserNotFound)
	if !ok {
		return
	}

	profile, err := h.profileService.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, profile)
}

// Create creates the caller's profile, optionally with an "image" file
// @Router /api/profiles [post]
func (h *ProfileHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req dto.CreateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	image, ok := formImage(c)
	if !ok {
		return
	}

	profile, err := h.profileService.Create(c.Request.Context(), userID, &req, image)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, "Profile created successfully", profile)
}

// Update applies a partial update to the profile of user :id
// @Router /api/profiles/{id} [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	targetUserID, ok := paramID(c, "id", service.ErrProfileNotFound)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil && !emptyBody(err) {
		respondBindError(c, err)
		return
	}

	image, ok := formImage(c)
	if !ok {
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), targetUserID, &req, image)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Profile updated successfully", profile)
}

// formImage returns the optional "image" upload of a multipart request
func formImage(c *gin.Context) (*multipart.FileHeader, bool) {
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		return nil, true
	}
	image, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		respondError(c, utils.NewValidationError("image", "The image failed to upload."))
		return nil, false
	}
	return image, true
}
