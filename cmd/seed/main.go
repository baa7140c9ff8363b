// Command seed loads the default tariff pack and a demo tenant into the
// configured database. Safe to re-run.
package main

import (
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/meterworks/metrobill/internal/config"
	"github.com/meterworks/metrobill/internal/seed"
	"github.com/meterworks/metrobill/pkg/db"
)

func main() {
	effectiveFlag := flag.String("effective", "2026-07-01", "tariff pack effective date (YYYY-MM-DD)")
	demo := flag.Bool("demo", false, "also seed a demo tenant with meters and readings")
	flag.Parse()

	effective, err := time.Parse("2006-01-02", *effectiveFlag)
	if err != nil {
		log.Fatalf("invalid -effective date: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	gdb, err := db.Open(cfg, logger)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}

	if err := seed.EnsureTariffPack(gdb, effective); err != nil {
		logger.Fatal("seed tariff pack", zap.Error(err))
	}
	logger.Info("tariff pack seeded", zap.Time("effective", effective))

	if *demo {
		if err := seed.EnsureDemoTenant(gdb); err != nil {
			logger.Fatal("seed demo tenant", zap.Error(err))
		}
		logger.Info("demo tenant seeded")
	}
}
