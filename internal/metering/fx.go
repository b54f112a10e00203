package metering

import (
	"github.com/codiolabs/marketplace-registration/internal/metering/repository"
	"github.com/codiolabs/marketplace-registration/internal/metering/service"
	"go.uber.org/fx"
)

var Module = fx.Module("metering.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
