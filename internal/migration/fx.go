package migration

import (
	"github.com/nutritioner/nutritioner/internal/config"
	"github.com/nutritioner/nutritioner/internal/meal/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// mysql/sqlite development databases take the gorm schema directly.
			return conn.AutoMigrate(&domain.Meal{})
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
