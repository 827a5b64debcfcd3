package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"user-hub.backend/pkg/logger"
)

// DBCheckMiddleware gates every request on store reachability. An
// unreachable store short-circuits with 503 before any handler runs.
func DBCheckMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.WithContext(c.Request.Context()).Exec("SELECT 1").Error; err != nil {
			logger.Error(c.Request.Context(), "Database connection error occurred",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("user_agent", c.Request.UserAgent()),
				zap.Error(err),
			)
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	}
}
