package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"waitlist.backend/internal/domain/entities"
	domainerrors "waitlist.backend/internal/domain/errors"
)

const internalErrorMessage = "Internal server error"

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Client errors carry the message and code;
// server errors collapse to a generic message with the cause in details.
func Error(c *gin.Context, err error) {
	appErr := asAppError(err)

	if appErr.Status < http.StatusInternalServerError {
		c.JSON(appErr.Status, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}

	c.JSON(appErr.Status, gin.H{
		"error":   internalErrorMessage,
		"details": details(appErr),
	})
}

// ErrorWithoutDetails is Error with the cause withheld from server errors
func ErrorWithoutDetails(c *gin.Context, err error) {
	appErr := asAppError(err)

	if appErr.Status < http.StatusInternalServerError {
		Error(c, appErr)
		return
	}
	c.JSON(appErr.Status, gin.H{"error": internalErrorMessage})
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"error": message,
		"code":  code,
	})
}

// Settlement re-emits a facilitator verdict verbatim
func Settlement(c *gin.Context, result *entities.SettlementResult) {
	for k, v := range result.Headers {
		c.Header(k, v)
	}
	c.Data(result.Status, "application/json; charset=utf-8", result.Body)
}

func asAppError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	// Default to Internal Server Error if not an AppError
	return domainerrors.InternalError(err)
}

func details(appErr *domainerrors.AppError) string {
	if appErr.Code == domainerrors.CodeInternalError {
		return appErr.Details
	}
	if appErr.Details != "" {
		return appErr.Message + ": " + appErr.Details
	}
	return appErr.Message
}
