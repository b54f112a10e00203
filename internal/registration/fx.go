package registration

import (
	"github.com/codiolabs/marketplace-registration/internal/registration/service"
	"go.uber.org/fx"
)

var Module = fx.Module("registration.service",
	fx.Provide(service.New),
)
