package statement

import (
	"github.com/meterworks/metrobill/internal/statement/repository"
	"github.com/meterworks/metrobill/internal/statement/service"
	"go.uber.org/fx"
)

var Module = fx.Module("statement",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
