package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todocore/internal/services"
)

var errInvalidRequestBody = errors.New("invalid request body")

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

// abortServiceError translates the service error taxonomy into
// transport status codes. Anything unrecognized is a plain 500.
func abortServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUnauthenticated):
		abort(c, newAPIError(http.StatusUnauthorized, err.Error()))
	case errors.Is(err, services.ErrForbidden):
		abort(c, newAPIError(http.StatusForbidden, err.Error()))
	case errors.Is(err, services.ErrTodoNotFound),
		errors.Is(err, services.ErrUserNotFound):
		abort(c, newAPIError(http.StatusNotFound, err.Error()))
	case errors.Is(err, services.ErrInvalidArgument),
		errors.Is(err, services.ErrValidation):
		abort(c, newAPIError(http.StatusBadRequest, err.Error()))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
