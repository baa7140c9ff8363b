package chargemap

import (
	"github.com/meterworks/metrobill/internal/chargemap/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("chargemap",
	fx.Provide(repository.NewRepository),
)
