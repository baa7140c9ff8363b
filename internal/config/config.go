// Package config loads runtime configuration from environment variables
// (optionally via a local .env file) with viper.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	DB        DBConfig        `mapstructure:"db"`
	Rating    RatingConfig    `mapstructure:"rating"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type DBConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type RatingConfig struct {
	// Workers bounds the per-run meter fan-out.
	Workers int `mapstructure:"workers"`
	// EmitZeroTiers includes tier lines with zero allocated quantity.
	EmitZeroTiers bool `mapstructure:"emit_zero_tiers"`
	// EmptyChargeMap is the policy when a water meter has no map rows:
	// "tiers_only" prices the tier pack with no extras, "none" yields an
	// empty bill for that meter.
	EmptyChargeMap string `mapstructure:"empty_charge_map"`
}

type SchedulerConfig struct {
	// Cron is the month-end rating run schedule.
	Cron string `mapstructure:"cron"`
}

const (
	EmptyChargeMapTiersOnly = "tiers_only"
	EmptyChargeMapNone      = "none"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("METROBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "metrobill.db")
	v.SetDefault("rating.workers", 8)
	v.SetDefault("rating.emit_zero_tiers", false)
	v.SetDefault("rating.empty_charge_map", EmptyChargeMapTiersOnly)
	v.SetDefault("scheduler.cron", "0 2 1 * *")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Rating.Workers < 1 {
		cfg.Rating.Workers = 1
	}
	return &cfg, nil
}

var Module = fx.Module("config",
	fx.Provide(Load),
)
