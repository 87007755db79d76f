package middleware

import (
	"net/http"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware turns panics into logged 500 responses so no
// request failure is fatal to the process.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				utils.Sugar.Errorw("panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}
