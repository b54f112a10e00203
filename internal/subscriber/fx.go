package subscriber

import (
	"github.com/codiolabs/marketplace-registration/internal/subscriber/repository"
	"github.com/codiolabs/marketplace-registration/internal/subscriber/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscriber.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
