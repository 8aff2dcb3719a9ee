package middleware

import (
	"context"
	"strings"

	"task-api/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID  = "user_id"
	ctxEmail   = "email"
	ctxIsAdmin = "is_admin"
	ctxClaims  = "claims"
)

// TokenAuthenticator validates bearer tokens
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.JWTClaims, error)
}

// AuthMiddleware requires a valid, unrevoked bearer token
func AuthMiddleware(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Unauthenticated.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			utils.Unauthorized(c, "Invalid authorization header.")
			c.Abort()
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			_ = c.Error(err)
			utils.Unauthorized(c, "Unauthenticated.")
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxIsAdmin, claims.IsAdmin)
		c.Set(ctxClaims, claims)

		c.Next()
	}
}

// GetUserID returns the authenticated user id
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetClaims returns the claims of the presented token
func GetClaims(c *gin.Context) (*utils.JWTClaims, bool) {
	claims, exists := c.Get(ctxClaims)
	if !exists {
		return nil, false
	}
	return claims.(*utils.JWTClaims), true
}

// IsAdmin reports whether the authenticated user is an administrator
func IsAdmin(c *gin.Context) bool {
	isAdmin, exists := c.Get(ctxIsAdmin)
	if !exists {
		return false
	}
	return isAdmin.(bool)
}
