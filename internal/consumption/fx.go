package consumption

import (
	"github.com/meterworks/metrobill/internal/consumption/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("consumption",
	fx.Provide(repository.NewRepository),
)
