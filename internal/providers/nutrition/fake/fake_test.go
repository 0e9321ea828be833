package fake

import (
	"context"
	"testing"

	mealdomain "github.com/nutritioner/nutritioner/internal/meal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimator_KnownMeal(t *testing.T) {
	estimator := NewEstimator()

	info, err := estimator.EstimateCalories(context.Background(), "  Apple ")
	require.NoError(t, err)
	assert.Equal(t, 95.0, info.Calories)
}

func TestEstimator_UnknownMeal(t *testing.T) {
	estimator := NewEstimator()

	_, err := estimator.EstimateCalories(context.Background(), "mystery stew")
	assert.Error(t, err)
}

func TestRecommender_EmptyHistoryFails(t *testing.T) {
	recommender := NewRecommender(2000)

	_, err := recommender.Recommend(context.Background(), mealdomain.Week{})
	assert.Error(t, err)
}

func TestRecommender_ReportsOverTargetDays(t *testing.T) {
	recommender := NewRecommender(2000)

	heavy := 2500.0
	light := 1500.0
	var week mealdomain.Week
	week[0] = &heavy
	week[1] = &light

	recommendations, err := recommender.Recommend(context.Background(), week)
	require.NoError(t, err)
	require.NotEmpty(t, recommendations)
	assert.Contains(t, recommendations[1], "exceeded")
}
