package config

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis is the shared client used for notification fan-out. It stays
// nil when REDIS_ADDR is unset; publishers must treat nil as disabled.
var Redis *redis.Client

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		Logger.Info("redis disabled (REDIS_ADDR not set)")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		Logger.Warn("redis unreachable, notification fan-out disabled", zap.Error(err))
		return
	}

	Redis = client
	Logger.Info("redis connected", zap.String("addr", addr))
}
