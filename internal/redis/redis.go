// Package redis connects to the Redis database holding command cooldowns.
package redis

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/redis/rueidis"
	"github.com/robalyx/casebot/internal/setup/config"
	"go.uber.org/zap"
)

// Connect opens a client for the configured database and checks it with PING.
func Connect(ctx context.Context, cfg *config.Redis, logger *zap.Logger) (rueidis.Client, error) {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{addr},
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		ClientName:   "casebot",
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Connected to Redis", zap.String("addr", addr), zap.Int("db", cfg.DB))

	return client, nil
}
