package rating

import (
	"github.com/meterworks/metrobill/internal/config"
	ratingdomain "github.com/meterworks/metrobill/internal/rating/domain"
	"github.com/meterworks/metrobill/internal/rating/service"
	"go.uber.org/fx"
)

var Module = fx.Module("rating.service",
	fx.Provide(NewOptions),
	fx.Provide(service.NewService),
)

func NewOptions(cfg *config.Config) ratingdomain.Options {
	return ratingdomain.Options{
		Workers:              cfg.Rating.Workers,
		EmitZeroTiers:        cfg.Rating.EmitZeroTiers,
		EmptyChargeMapPolicy: cfg.Rating.EmptyChargeMap,
	}
}
