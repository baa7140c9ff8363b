package tenant

import (
	"github.com/meterworks/metrobill/internal/tenant/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("tenant",
	fx.Provide(repository.NewRepository),
)
