package redis_test

import (
	"net"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/robalyx/casebot/internal/redis"
	"github.com/robalyx/casebot/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func redisConfig(t *testing.T, mr *miniredis.Miniredis, db int) *config.Redis {
	t.Helper()

	host, portStr, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return &config.Redis{Host: host, Port: port, DB: db}
}

func TestConnectSelectsDatabase(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	client, err := redis.Connect(t.Context(), redisConfig(t, mr, 2), zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Do(t.Context(), client.B().Set().Key("cooldown:1:2:snippetban").Value("1").Build()).Error())

	value, err := mr.DB(2).Get("cooldown:1:2:snippetban")
	require.NoError(t, err)
	assert.Equal(t, "1", value)
	assert.Empty(t, mr.Keys())
}

func TestConnectUnreachable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	cfg := redisConfig(t, mr, 0)
	mr.Close()

	_, err := redis.Connect(t.Context(), cfg, zap.NewNop())
	require.Error(t, err)
}
