package domain

import (
	"context"

	mealdomain "github.com/nutritioner/nutritioner/internal/meal/domain"
)

// NutritionInfo is the estimation provider's answer for one meal description.
type NutritionInfo struct {
	Calories float64 `json:"calories"`
}

// Estimator maps a free-text meal description to a calorie estimate. It fails
// with an opaque error when the description cannot be interpreted.
type Estimator interface {
	EstimateCalories(ctx context.Context, mealDescription string) (NutritionInfo, error)
}

// Recommender maps a seven-day calorie history to suggestions.
type Recommender interface {
	Recommend(ctx context.Context, history mealdomain.Week) ([]string, error)
}
