package storage

import (
	"errors"
	"fmt"

	"github.com/lupon/admin-client/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open creates the store selected by cfg.Driver.
// When the backend cannot be reached and cfg.AllowMemoryFallback is set, an
// in-memory store is returned instead and the session will not survive the process.
func Open(cfg config.StorageConfig, log *zap.Logger) (Storage, error) {
	if log == nil {
		log = zap.NewNop()
	}

	s, err := open(cfg)
	if err == nil {
		log.Debug("opened client storage", zap.String("driver", cfg.Driver))
		return s, nil
	}

	if errors.Is(err, ErrUnsupportedDriver) || !cfg.AllowMemoryFallback {
		return nil, err
	}

	log.Warn("client storage unavailable, falling back to in-memory storage; "+
		"the session will not be persisted",
		zap.String("driver", cfg.Driver),
		zap.Error(err),
	)
	return NewMemoryStorage(), nil
}

func open(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case config.StorageMemory:
		return NewMemoryStorage(), nil
	case config.StorageSQLite:
		return openGorm(sqlite.Open(cfg.SQLitePath), gormPlugins(cfg)...)
	case config.StoragePostgres:
		return openGorm(postgres.Open(cfg.PostgresDSN), gormPlugins(cfg)...)
	case config.StorageRedis:
		return NewRedisStorage(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB, cfg.KeyPrefix)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

func gormPlugins(cfg config.StorageConfig) []gorm.Plugin {
	if !cfg.TraceEnabled {
		return nil
	}
	return []gorm.Plugin{otelgorm.NewPlugin(otelgorm.WithoutQueryVariables())}
}

func openGorm(dialector gorm.Dialector, plugins ...gorm.Plugin) (*GormStorage, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", dialector.Name(), err)
	}

	s := NewGormStorage(db)
	for _, p := range plugins {
		if err := db.Use(p); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("registering gorm plugin %s: %w", p.Name(), err)
		}
	}

	if err := s.Migrate(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}
