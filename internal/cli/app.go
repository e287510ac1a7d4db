package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"signup_portal/internal/domain/repository"
	"signup_portal/internal/platform/config"
	"signup_portal/internal/platform/database"
	"signup_portal/internal/platform/kv"
)

// openUserRepository connects the configured store backend. The returned
// closer releases whatever connection was opened.
func openUserRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.UserRepository, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		db, err := database.Connect(ctx, cfg.DBConnStr, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx, db); err != nil {
			database.Close(db, logger)
			return nil, nil, err
		}
		return repository.NewPgUserRepository(db), func() { database.Close(db, logger) }, nil

	case config.StoreBackendRedis:
		rdb, err := kv.Connect(ctx, kv.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisUserRepository(rdb), func() { kv.Close(rdb, logger) }, nil

	case config.StoreBackendMemory:
		logger.Warn("using in-memory user store; registrations are lost on restart")
		return repository.NewMemoryUserRepository(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
