package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-manager/internal/services"
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

func newForbiddenError(message string) apiError {
	return newAPIError(http.StatusForbidden, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newConflictError(message string) apiError {
	return newAPIError(http.StatusConflict, message)
}

// abortServiceError maps the service error taxonomy onto HTTP statuses:
// validation 400, authorization 403, not-found (which also covers
// unauthorized mutation, deliberately) 404, conflict 409, the rest 500
// with a generic message.
func abortServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidSchedule),
		errors.Is(err, services.ErrEmptyComment),
		errors.Is(err, services.ErrParentMismatch):
		abort(c, newBadRequestError(err.Error()))
	case errors.Is(err, services.ErrPermissionDenied):
		abort(c, newForbiddenError(err.Error()))
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrCommentNotFound):
		abort(c, newNotFoundError(err.Error()))
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailRegistered):
		abort(c, newConflictError(err.Error()))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
