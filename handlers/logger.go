package handlers

import (
	"net/http"

	"coachbar/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves a Zap logger from the Gin context or creates a new one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	logger, _ := zap.NewProduction()
	return logger
}

// authedUserID returns the user id set by the auth middleware, aborting with
// 401 when it is missing.
func authedUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("userID")
	if !exists {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
		return "", false
	}
	return id, true
}
