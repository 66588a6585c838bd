package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// Limiter enforces a per-user cooldown between invocations of the same command.
// State lives in Redis so cooldowns hold across shards and restarts.
type Limiter struct {
	client   rueidis.Client
	duration time.Duration
	logger   *zap.Logger
}

// New creates a cooldown limiter. A zero duration disables cooldowns.
func New(client rueidis.Client, duration time.Duration, logger *zap.Logger) *Limiter {
	return &Limiter{
		client:   client,
		duration: duration,
		logger:   logger.Named("cooldown"),
	}
}

// Acquire claims the cooldown slot for the user and command.
// Returns false and the remaining wait when the user is still on cooldown.
func (l *Limiter) Acquire(ctx context.Context, guildID, userID uint64, command string) (bool, time.Duration, error) {
	if l.duration <= 0 {
		return true, 0, nil
	}

	key := cooldownKey(guildID, userID, command)

	err := l.client.Do(ctx, l.client.B().Set().
		Key(key).
		Value("1").
		Nx().
		PxMilliseconds(l.duration.Milliseconds()).
		Build()).Error()
	if err == nil {
		return true, 0, nil
	}

	if !rueidis.IsRedisNil(err) {
		return false, 0, fmt.Errorf("failed to acquire cooldown: %w", err)
	}

	remaining, err := l.client.Do(ctx, l.client.B().Pttl().Key(key).Build()).AsInt64()
	if err != nil {
		return false, 0, fmt.Errorf("failed to read cooldown: %w", err)
	}

	l.logger.Debug("Command on cooldown",
		zap.Uint64("guildID", guildID),
		zap.Uint64("userID", userID),
		zap.String("command", command),
		zap.Int64("remaining_ms", remaining))

	return false, time.Duration(max(remaining, 0)) * time.Millisecond, nil
}

// Release clears the cooldown slot so the next invocation is accepted right away.
func (l *Limiter) Release(ctx context.Context, guildID, userID uint64, command string) error {
	if l.duration <= 0 {
		return nil
	}

	err := l.client.Do(ctx, l.client.B().Del().Key(cooldownKey(guildID, userID, command)).Build()).Error()
	if err != nil {
		return fmt.Errorf("failed to release cooldown: %w", err)
	}

	return nil
}

func cooldownKey(guildID, userID uint64, command string) string {
	return fmt.Sprintf("cooldown:%d:%d:%s", guildID, userID, command)
}
