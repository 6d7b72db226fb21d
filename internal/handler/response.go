package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobsoutcuba/backend/internal/apperror"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"go.uber.org/zap"
)

// respond writes the success envelope. message and data are both optional.
func respond(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondError maps any error onto the error envelope. Server-side errors
// are logged with the request route.
func respondError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.Log.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
	}
	c.JSON(appErr.StatusCode, gin.H{
		"success": false,
		"error": gin.H{
			"message":    appErr.Message,
			"statusCode": appErr.StatusCode,
			"status":     appErr.Status,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// respondBadRequest is the shortcut for body or parameter parsing failures.
func respondBadRequest(c *gin.Context, message string) {
	respondError(c, apperror.BadRequest(message))
}
