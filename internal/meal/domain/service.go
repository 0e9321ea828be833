package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type LogMealRequest struct {
	UserID      string
	Description string
	// CreatedDate is the caller-supplied attribution date. Nil means the
	// server's current date. Values are accepted as-is, future dates included.
	CreatedDate *time.Time
}

type LogMealResponse struct {
	Calories float64 `json:"calories"`
}

type WeeklyStatsRequest struct {
	UserID string
}

type WeeklyStatsResponse struct {
	History         Week     `json:"history"`
	Recommendations []string `json:"recommendations"`
}

type Service interface {
	LogMeal(context.Context, LogMealRequest) (LogMealResponse, error)
	WeeklyStats(context.Context, WeeklyStatsRequest) (WeeklyStatsResponse, error)
}

var (
	ErrInvalidUserID      = errors.New("invalid_user_id")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidCreatedDate = errors.New("invalid_created_date")

	// ErrNoData reports a valid stats request for a user with no meals in the
	// window. It is an outcome, not a failure.
	ErrNoData = errors.New("no_data")
)

// StorageError reports a failed storage operation. The transaction was rolled
// back in full; nothing was written.
type StorageError struct {
	Op     string
	Detail string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("database error in %s: %s", e.Op, e.Detail)
}

// EstimationError reports that the estimation provider could not interpret a
// meal description. The call is never retried and nothing is stored.
type EstimationError struct {
	Detail string
}

func (e *EstimationError) Error() string {
	return fmt.Sprintf("estimation failed: %s", e.Detail)
}

// RecommendationError reports a recommendation provider failure downstream of
// a valid calorie history.
type RecommendationError struct {
	Detail string
}

func (e *RecommendationError) Error() string {
	return fmt.Sprintf("recommendation failed: %s", e.Detail)
}
