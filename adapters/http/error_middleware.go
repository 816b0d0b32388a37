package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authUC "github.com/aislescan/aislescan-api/internal/application/usecase/auth"
	"github.com/aislescan/aislescan-api/pkg/apperror"
	"github.com/aislescan/aislescan-api/pkg/logger"
)

// ErrorMiddleware translates errors attached by handlers into HTTP
// responses. Typed AppErrors map to their status; anything else is a 500
// with a generic body, logged with the real cause for operators.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if errors.Is(err, authUC.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
			return
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			status := apperror.ToHTTPStatus(appErr)
			if status >= http.StatusInternalServerError {
				log.Error("Request failed", appErr.Err,
					zap.String("path", c.Request.URL.Path),
					zap.String("details", appErr.Details),
				)
			}
			c.JSON(status, appErr.ToJSON())
			return
		}

		log.Error("Unhandled error", err, zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
	}
}
