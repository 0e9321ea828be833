package meal

import (
	"github.com/nutritioner/nutritioner/internal/meal/repository"
	"github.com/nutritioner/nutritioner/internal/meal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("meal.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
