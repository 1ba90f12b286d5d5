package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string, detail string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: message,
		Error:   detail,
	})
}

// HandleServiceError maps a service-layer error to an HTTP response.
// ErrAccessDenied maps to 404 alongside ErrNotFound so that lack of
// access and non-existence are indistinguishable to the caller.
// Validation and authorization messages are safe to echo; everything
// else gets a generic body.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		ErrorResponse(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, ErrUnauthenticated):
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required", "")
	case errors.Is(err, ErrInsufficientPermission):
		ErrorResponse(c, http.StatusForbidden, "Insufficient permission", err.Error())
	case errors.Is(err, ErrAccessDenied), errors.Is(err, ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, "Resource not found or access denied", "")
	case errors.Is(err, ErrConflict):
		ErrorResponse(c, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrUnavailable):
		ErrorResponse(c, http.StatusServiceUnavailable, "Service temporarily unavailable, please retry", "")
	default:
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error", "")
	}
}
