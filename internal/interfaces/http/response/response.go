package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "vendor-onboarding.backend/internal/domain/errors"
	"vendor-onboarding.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// OK sends fields with ok:true added
func OK(c *gin.Context, status int, fields gin.H) {
	if fields == nil {
		fields = gin.H{}
	}
	fields["ok"] = true
	c.JSON(status, fields)
}

// Error maps err to its AppError and sends it. Causes of 5xx errors are
// logged, never returned.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromDomain(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("path", c.FullPath()),
			zap.String("code", appErr.Code),
			zap.Error(err),
		)
	}

	c.JSON(appErr.Status, gin.H{
		"ok":      false,
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message,
	})
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"ok":      false,
		"code":    code,
		"message": message,
		"error":   message,
	})
}
