// Package db opens the gorm handle shared by every repository.
package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	chargemapdomain "github.com/meterworks/metrobill/internal/chargemap/domain"
	"github.com/meterworks/metrobill/internal/config"
	consumptiondomain "github.com/meterworks/metrobill/internal/consumption/domain"
	ledgerdomain "github.com/meterworks/metrobill/internal/ledger/domain"
	meterdomain "github.com/meterworks/metrobill/internal/meter/domain"
	statementdomain "github.com/meterworks/metrobill/internal/statement/domain"
	tariffdomain "github.com/meterworks/metrobill/internal/tariff/domain"
	tenantdomain "github.com/meterworks/metrobill/internal/tenant/domain"
)

func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DB.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DB.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DB.DSN)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", cfg.DB.Driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(gdb); err != nil {
		return nil, err
	}

	log.Info("database ready", zap.String("driver", cfg.DB.Driver))
	return gdb, nil
}

// AutoMigrate keeps the engine's read/write models in step. Schema
// ownership beyond these tables lives outside this service.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&tenantdomain.Tenant{},
		&meterdomain.Meter{},
		&tariffdomain.TariffRate{},
		&chargemapdomain.MeterChargeMap{},
		&consumptiondomain.ConsumptionRecord{},
		&statementdomain.MeterStatement{},
		&statementdomain.StatementLine{},
		&statementdomain.TenantStatement{},
		&ledgerdomain.Entry{},
	)
}

var Module = fx.Module("db",
	fx.Provide(Open),
)
