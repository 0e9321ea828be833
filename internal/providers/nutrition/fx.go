package nutrition

import (
	"github.com/nutritioner/nutritioner/internal/config"
	"github.com/nutritioner/nutritioner/internal/providers/nutrition/domain"
	"github.com/nutritioner/nutritioner/internal/providers/nutrition/fake"
	"go.uber.org/fx"
)

var Module = fx.Module("nutrition.providers",
	fx.Provide(fake.NewEstimator),
	fx.Provide(func(cfg config.Config) domain.Recommender {
		return fake.NewRecommender(cfg.DailyCalorieTarget)
	}),
)
