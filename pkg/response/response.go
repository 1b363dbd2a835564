package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
	"github.com/Goodnessmbakara/skillsverse/pkg/validator"
	"github.com/gin-gonic/gin"
)

// ResponseError standardized error response. fallback is used as the message
// for internal errors so store details never leak to clients.
func ResponseError(c *gin.Context, err error, fallback string) {
	code := apperror.MapErrorToStatus(err)

	message := err.Error()
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}

	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error] %s %s: %v", c.Request.Method, c.FullPath(), err)
		message = fallback
	}

	c.JSON(code, gin.H{"message": message})
}

// ValidationError writes the 400 body with the structured field error list.
func ValidationError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": message,
		"errors":  validator.FieldErrors(err),
	})
}

// NotFound writes a 404 with the given message.
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"message": message})
}
