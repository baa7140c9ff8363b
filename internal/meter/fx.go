package meter

import (
	"github.com/meterworks/metrobill/internal/meter/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("meter",
	fx.Provide(repository.NewRepository),
)
