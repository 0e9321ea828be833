package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/nutritioner/nutritioner/internal/clock"
	"github.com/nutritioner/nutritioner/internal/config"
	"github.com/nutritioner/nutritioner/internal/meal"
	"github.com/nutritioner/nutritioner/internal/migration"
	"github.com/nutritioner/nutritioner/internal/providers/nutrition"
	"github.com/nutritioner/nutritioner/internal/server"
	"github.com/nutritioner/nutritioner/pkg/db"
	"github.com/nutritioner/nutritioner/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		nutrition.Module,
		meal.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
