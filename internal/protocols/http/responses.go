package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"bloghub/internal/core"
	"bloghub/pkg/models"
)

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func respondFail(c *gin.Context, status int, msg string) {
	c.JSON(status, models.APIResponse{
		Success:   false,
		Error:     msg,
		Timestamp: time.Now(),
	})
}

// respondError maps service errors to HTTP status codes. Validation
// failures surface as 400 with the service's message.
func respondError(c *gin.Context, err error) {
	switch {
	case models.IsNotFound(err):
		respondFail(c, 404, err.Error())
	case errors.Is(err, models.ErrForbidden):
		respondFail(c, 403, "forbidden")
	case errors.Is(err, models.ErrCategoryNotEmpty):
		respondFail(c, 409, err.Error())
	case errors.Is(err, core.ErrEmailTaken):
		respondFail(c, 409, err.Error())
	case errors.Is(err, core.ErrInvalidCredentials):
		respondFail(c, 401, err.Error())
	default:
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.StatusCode > 0 {
			respondFail(c, appErr.StatusCode, appErr.Message)
			return
		}
		respondFail(c, 400, err.Error())
	}
}
