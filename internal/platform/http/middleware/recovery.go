package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"health_backend/internal/platform/apperror"
)

// Recovery turns a panic into a 500 in the uniform error shape.
// The panic value is always logged.
func Recovery(log logrus.FieldLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(RequestIDKey),
		}).Errorf("panic recovered: %v", recovered)

		env := apperror.Internal("Internal server error")
		c.AbortWithStatusJSON(env.Status, ErrorBody{
			Title:   env.Title,
			Status:  env.Status,
			Details: env.Message,
		})
	})
}
