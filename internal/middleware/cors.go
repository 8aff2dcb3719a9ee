package middleware

import (
	"strings"

	"task-api/internal/config"

	"github.com/gin-gonic/gin"
)

// CORS cross-origin headers from config
func CORS(cfg *config.Config) gin.HandlerFunc {
	methods := strings.Join(cfg.CORS.AllowMethods, ", ")
	headers := strings.Join(cfg.CORS.AllowHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		for _, o := range cfg.CORS.Origins {
			if o == "*" || o == origin {
				c.Header("Access-Control-Allow-Origin", origin)
				break
			}
		}

		if cfg.CORS.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		if methods != "" {
			c.Header("Access-Control-Allow-Methods", methods)
		}
		if headers != "" {
			c.Header("Access-Control-Allow-Headers", headers)
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
