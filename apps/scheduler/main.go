package main

import (
	"context"

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
	"github.com/meterworks/metrobill/internal/scheduler"
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

		// Domain services required by the month-end run
		tenant.Module,
		meter.Module,
		tariff.Module,
		chargemap.Module,
		consumption.Module,
		rating.Module,
		ledger.Module,
		statement.Module,

		// No server module!
		scheduler.Module,
		fx.Invoke(StartScheduler),
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

func StartScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			s.Stop()
			return nil
		},
	})
}
