package tariff

import (
	"github.com/meterworks/metrobill/internal/tariff/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("tariff",
	fx.Provide(repository.NewRepository),
)
