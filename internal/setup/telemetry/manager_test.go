package telemetry_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalyx/casebot/internal/setup/config"
	"github.com/robalyx/casebot/internal/setup/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerGetLoggers(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	manager := telemetry.NewManager(telemetry.ServiceBot, logDir, &config.Debug{
		LogLevel:      "info",
		MaxLogsToKeep: 3,
		MaxLogLines:   100,
	})
	defer manager.Close()

	mainLogger, dbLogger, err := manager.GetLoggers()
	require.NoError(t, err)

	mainLogger.Info("hello from main")
	dbLogger.Info("hello from database")
	require.NoError(t, mainLogger.Sync())
	require.NoError(t, dbLogger.Sync())

	data, err := os.ReadFile(filepath.Join(manager.GetCurrentSessionDir(), "main.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from main")
	assert.Contains(t, string(data), manager.GetInstanceID())

	data, err = os.ReadFile(filepath.Join(manager.GetCurrentSessionDir(), "database.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from database")
}

func TestManagerRotatesOldSessions(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	old := time.Now().Add(-time.Hour)

	for _, name := range []string{"a", "b", "c", "d"} {
		dir := filepath.Join(logDir, name)
		require.NoError(t, os.MkdirAll(dir, os.ModePerm))
		require.NoError(t, os.Chtimes(dir, old, old))
		old = old.Add(time.Minute)
	}

	manager := telemetry.NewManager(telemetry.ServiceExport, logDir, &config.Debug{
		LogLevel:      "debug",
		MaxLogsToKeep: 2,
		MaxLogLines:   100,
	})
	defer manager.Close()

	_, _, err := manager.GetLoggers()
	require.NoError(t, err)

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	assert.Len(t, names, 2)
	assert.Contains(t, names, "d")
	assert.Contains(t, names, filepath.Base(manager.GetCurrentSessionDir()))
}

func TestManagerInvalidLevel(t *testing.T) {
	t.Parallel()

	manager := telemetry.NewManager(telemetry.ServiceBot, t.TempDir(), &config.Debug{
		LogLevel:      "loud",
		MaxLogsToKeep: 1,
		MaxLogLines:   10,
	})
	defer manager.Close()

	_, _, err := manager.GetLoggers()
	assert.ErrorContains(t, err, "invalid log level")
}
