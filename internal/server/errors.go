package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	mealdomain "github.com/nutritioner/nutritioner/internal/meal/domain"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware maps domain errors attached to the context onto
// one caller-visible payload per error kind.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return errInvalidRequest
}

var errInvalidRequest = errors.New("invalid_request")

func mapError(err error) (int, errorPayload) {
	var (
		storageErr        *mealdomain.StorageError
		estimationErr     *mealdomain.EstimationError
		recommendationErr *mealdomain.RecommendationError
	)

	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: validationErrorMessage(err),
		}
	case errors.As(err, &estimationErr):
		return http.StatusBadRequest, errorPayload{
			Type:    "estimation_error",
			Message: estimationErr.Detail,
		}
	case errors.Is(err, mealdomain.ErrNoData):
		return http.StatusNotFound, errorPayload{
			Type:    "no_data",
			Message: "no meals recorded for this user in the last week",
		}
	case errors.As(err, &storageErr):
		return http.StatusInternalServerError, errorPayload{
			Type:    "database_error",
			Message: storageErr.Detail,
		}
	case errors.As(err, &recommendationErr):
		return http.StatusInternalServerError, errorPayload{
			Type:    "recommendation_error",
			Message: recommendationErr.Detail,
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, errInvalidRequest),
		errors.Is(err, mealdomain.ErrInvalidUserID),
		errors.Is(err, mealdomain.ErrInvalidDescription),
		errors.Is(err, mealdomain.ErrInvalidCreatedDate):
		return true
	default:
		return false
	}
}

func validationErrorMessage(err error) string {
	switch {
	case errors.Is(err, mealdomain.ErrInvalidUserID):
		return "user_id is required"
	case errors.Is(err, mealdomain.ErrInvalidDescription):
		return "description is required"
	case errors.Is(err, mealdomain.ErrInvalidCreatedDate):
		return "created_date must be a date (2006-01-02) or RFC3339 timestamp"
	default:
		return "invalid request"
	}
}
