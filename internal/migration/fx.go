package migration

import (
	"github.com/wasteworks/hazbill/internal/config"
	"github.com/wasteworks/hazbill/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.MigrateOnStart {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		}

		if cfg.SeedOnStart {
			return seed.EnsureDefaultSettings(conn)
		}
		return nil
	}),
)
