package httpHandler

import (
	"errors"
	"net/http"

	"recipe-server/entities"
	"recipe-server/logger"
	"recipe-server/usecases"

	"github.com/gin-gonic/gin"
)

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}

func unprocessable(c *gin.Context, messages ...string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": messages})
}

// respondError maps use case errors onto status codes. Messages sent to the
// client are fixed strings; store errors are only logged.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	if vErr, ok := entities.IsValidation(err); ok {
		unprocessable(c, vErr.Messages...)
		return
	}

	switch {
	case errors.Is(err, usecases.ErrUnauthorized):
		unauthorized(c)
	case errors.Is(err, usecases.ErrSaveFailed):
		unprocessable(c, "Unable to save record")
	default:
		log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
