package handler

import (
	"task-api/internal/dto"
	"task-api/internal/middleware"
	"task-api/internal/service"
	"task-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler registration, login and session endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates an account
// @Router /api/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, "User registered successfully", dto.NewUserInfo(user))
}

// Login exchanges credentials for an access token
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "User logged in successfully", resp)
}

// Logout revokes the presented token
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		utils.Unauthorized(c, "Unauthenticated.")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "User logged out successfully", nil)
}

// GetMe returns the authenticated user
// @Router /api/user [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	user, err := h.authService.GetMe(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, dto.NewUserInfo(user))
}
