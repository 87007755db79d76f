package middleware

import (
	"net/http"
	"strings"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware reflects the request origin when it is on the
// CORS_ALLOWED_ORIGINS list (comma-separated, "*" to allow any).
func CORSMiddleware() gin.HandlerFunc {
	allowed := strings.Split(utils.GetEnvAsString("CORS_ALLOWED_ORIGINS", "*"), ",")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			for _, o := range allowed {
				o = strings.TrimSpace(o)
				if o == "*" || o == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods",
			"POST, GET, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
