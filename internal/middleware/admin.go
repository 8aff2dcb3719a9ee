package middleware

import (
	"task-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware requires the admin role; must run after AuthMiddleware
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			utils.Forbidden(c, "This action is unauthorized.")
			c.Abort()
			return
		}
		c.Next()
	}
}
