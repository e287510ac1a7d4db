package kv

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect builds a Redis client and verifies it with a PING.
func Connect(ctx context.Context, opts Options, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}
	logger.Info("connected to Redis", zap.String("addr", opts.Addr))
	return rdb, nil
}

func Close(rdb *redis.Client, logger *zap.Logger) {
	if rdb != nil {
		rdb.Close()
		logger.Info("redis connection closed")
	}
}
