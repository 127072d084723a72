package cache

import (
	"context"
	"fmt"
	"time"

	"his-backend/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedisClient opens the connection backing the login rate limiter. The
// limiter tolerates a Redis outage at runtime, but an unreachable Redis at
// boot is treated as a configuration error.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis at %s:%s unreachable: %w", cfg.Host, cfg.Port, err)
	}

	logrus.Infof("Connected to Redis at %s:%s", cfg.Host, cfg.Port)

	return client, nil
}
