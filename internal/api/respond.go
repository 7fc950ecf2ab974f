package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// InternalError logs the cause and answers with a generic 500.
func InternalError(c *gin.Context, action string, err error) {
	_ = c.Error(err)
	logf(c, "%s failed error=%v", action, err)
	Error(c, http.StatusInternalServerError, "internal server error")
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
