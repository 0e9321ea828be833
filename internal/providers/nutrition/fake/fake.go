// Package fake ships deterministic stand-ins for the nutrition providers so
// the service runs end to end without an external estimation API.
package fake

import (
	"context"
	"fmt"
	"strings"

	mealdomain "github.com/nutritioner/nutritioner/internal/meal/domain"
	"github.com/nutritioner/nutritioner/internal/providers/nutrition/domain"
)

var calorieTable = map[string]float64{
	"apple":        95,
	"banana":       105,
	"orange":       62,
	"oatmeal":      150,
	"salad":        100,
	"sandwich":     300,
	"burger":       500,
	"pizza slice":  285,
	"pasta":        400,
	"steak":        679,
	"rice bowl":    420,
	"protein bar":  200,
	"yogurt":       150,
	"coffee":       2,
	"orange juice": 110,
}

type Estimator struct{}

func NewEstimator() domain.Estimator {
	return &Estimator{}
}

func (e *Estimator) EstimateCalories(_ context.Context, mealDescription string) (domain.NutritionInfo, error) {
	key := strings.ToLower(strings.TrimSpace(mealDescription))
	calories, ok := calorieTable[key]
	if !ok {
		return domain.NutritionInfo{}, fmt.Errorf("no nutrition data for %q", mealDescription)
	}
	return domain.NutritionInfo{Calories: calories}, nil
}

type Recommender struct {
	dailyTarget float64
}

func NewRecommender(dailyTarget float64) *Recommender {
	return &Recommender{dailyTarget: dailyTarget}
}

// Recommend compares each recorded day against the daily target and returns
// plain-text suggestions. Days without data are reported separately.
func (r *Recommender) Recommend(_ context.Context, history mealdomain.Week) ([]string, error) {
	var (
		recorded int
		over     int
		under    int
		total    float64
	)
	for _, day := range history {
		if day == nil {
			continue
		}
		recorded++
		total += *day
		if *day > r.dailyTarget {
			over++
		} else {
			under++
		}
	}

	if recorded == 0 {
		return nil, fmt.Errorf("empty calorie history")
	}

	recommendations := []string{
		fmt.Sprintf("You averaged %.0f kcal over the %d day(s) with logged meals.", total/float64(recorded), recorded),
	}
	if over > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("You exceeded your %.0f kcal target on %d day(s); consider lighter dinners.", r.dailyTarget, over))
	}
	if under == recorded {
		recommendations = append(recommendations,
			fmt.Sprintf("All logged days were at or below your %.0f kcal target. Keep it up.", r.dailyTarget))
	}
	if missing := mealdomain.HistoryDays - recorded; missing > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("No meals logged on %d of the last %d days; log every meal for better advice.", missing, mealdomain.HistoryDays))
	}
	return recommendations, nil
}
