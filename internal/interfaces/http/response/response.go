package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "user-hub.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. A storage outage always maps to 500;
// anything that is not an AppError falls back to the catch-all 400.
func Error(c *gin.Context, err error) {
	if errors.Is(err, domainerrors.ErrStorageUnavailable) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "An internal server error occurred. Please try again later.",
		})
		return
	}

	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.BadRequest("bad request")
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
