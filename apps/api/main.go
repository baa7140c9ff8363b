// @title           Metrobill API
// @version         1.0
// @description     Metrobill municipal utility rating API

// @contact.name   API Support
// @contact.email  support@meterworks.io

// @host      localhost:8080
// @BasePath  /api
// @Schemes 	http https

package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/meterworks/metrobill/internal/chargemap"
	"github.com/meterworks/metrobill/internal/clock"
	"github.com/meterworks/metrobill/internal/config"
	"github.com/meterworks/metrobill/internal/consumption"
	"github.com/meterworks/metrobill/internal/ledger"
	"github.com/meterworks/metrobill/internal/meter"
	"github.com/meterworks/metrobill/internal/observability"
	"github.com/meterworks/metrobill/internal/rating"
	"github.com/meterworks/metrobill/internal/server"
	"github.com/meterworks/metrobill/internal/statement"
	"github.com/meterworks/metrobill/internal/tariff"
	"github.com/meterworks/metrobill/internal/tenant"
	"github.com/meterworks/metrobill/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		// Domain modules
		tenant.Module,
		meter.Module,
		tariff.Module,
		chargemap.Module,
		consumption.Module,
		rating.Module,
		ledger.Module,
		statement.Module,

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server) {
			s.RegisterAPIRoutes()
		}),
		fx.Invoke(server.RunHTTP),
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
