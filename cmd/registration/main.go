package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/codiolabs/marketplace-registration/internal/clock"
	"github.com/codiolabs/marketplace-registration/internal/config"
	"github.com/codiolabs/marketplace-registration/internal/migration"
	"github.com/codiolabs/marketplace-registration/internal/observability"
	"github.com/codiolabs/marketplace-registration/internal/server"
	"github.com/codiolabs/marketplace-registration/pkg/db"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP surface plus the registration, subscriber and metering domains
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
