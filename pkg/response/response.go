// Package response holds the JSON envelope shared by the HTTP gateway.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(message string, statusCode int, code string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

func BadRequest(message string) *APIError {
	return NewAPIError(message, http.StatusBadRequest, "BAD_REQUEST")
}

func NotFound(resource string) *APIError {
	return NewAPIError(resource+" not found", http.StatusNotFound, "RESOURCE_NOT_FOUND")
}

func Unauthorized() *APIError {
	return NewAPIError("missing merchant id", http.StatusUnauthorized, "UNAUTHORIZED")
}

// Success writes {"success":true,"data":...}.
func Success(c *gin.Context, data interface{}, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}
	c.JSON(code, gin.H{"success": true, "data": data})
}

// Paged is Success with list metadata.
func Paged(c *gin.Context, data interface{}, total, page, pageSize int) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      data,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Error writes err as the error envelope. Anything that is not an *APIError
// becomes a 500 without leaking its message.
func Error(c *gin.Context, err error) {
	apiErr, ok := err.(*APIError)
	if !ok {
		apiErr = NewAPIError("internal server error", http.StatusInternalServerError, "INTERNAL")
	}
	c.AbortWithStatusJSON(apiErr.StatusCode, gin.H{
		"success": false,
		"error":   apiErr.Message,
		"code":    apiErr.Code,
	})
}
