package directory

import (
	"time"

	"github.com/codiolabs/marketplace-registration/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("directory",
	fx.Provide(provideResolver),
)

func provideResolver(cfg config.Config, log *zap.Logger) Resolver {
	return NewClient(ClientConfig{
		Endpoint: cfg.DirectoryEndpoint,
		APIKey:   cfg.DirectoryAPIKey,
		Timeout:  time.Duration(cfg.DirectoryTimeoutMS) * time.Millisecond,
	}, log)
}
