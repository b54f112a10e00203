package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	meteringdomain "github.com/codiolabs/marketplace-registration/internal/metering/domain"
	subscriberdomain "github.com/codiolabs/marketplace-registration/internal/subscriber/domain"
	"github.com/codiolabs/marketplace-registration/pkg/db"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg db.Config) error {
		if cfg.Type == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// Versioned migrations are postgres only; other dialects are used
		// for local development and tests where the gorm schema suffices.
		return conn.AutoMigrate(
			&subscriberdomain.SubscriberRecord{},
			&meteringdomain.MeteringRecord{},
		)
	}),
)
