package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/robalyx/casebot/internal/setup/config"
	"github.com/robalyx/casebot/internal/setup/telemetry/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceType represents the type of service being initialized.
type ServiceType int

const (
	ServiceBot ServiceType = iota
	ServiceExport
)

// String returns the component name used in log directories and spans.
func (s ServiceType) String() string {
	switch s {
	case ServiceBot:
		return "bot"
	case ServiceExport:
		return "export"
	default:
		return "unknown"
	}
}

// Manager handles the creation of log files and rotation of old log sessions.
// Every run writes into its own timestamped session directory.
type Manager struct {
	instanceID        string
	serviceType       ServiceType
	logDir            string
	currentSessionDir string
	level             string
	maxLogsToKeep     int
	maxLogLines       int
	writers           []*logger.LogRotator
}

// NewManager creates a new Manager instance.
func NewManager(serviceType ServiceType, logDir string, debugCfg *config.Debug) *Manager {
	return &Manager{
		instanceID:    uuid.New().String(),
		serviceType:   serviceType,
		logDir:        logDir,
		level:         debugCfg.LogLevel,
		maxLogsToKeep: debugCfg.MaxLogsToKeep,
		maxLogLines:   debugCfg.MaxLogLines,
	}
}

// GetLoggers initializes the main and database loggers.
func (lm *Manager) GetLoggers() (*zap.Logger, *zap.Logger, error) {
	if err := lm.setupLogDirectories(); err != nil {
		return nil, nil, err
	}

	mainLogger, err := lm.initLogger(filepath.Join(lm.currentSessionDir, "main.log"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize main logger: %w", err)
	}

	dbLogger, err := lm.initLogger(filepath.Join(lm.currentSessionDir, "database.log"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database logger: %w", err)
	}

	return mainLogger, dbLogger, nil
}

// GetInstanceID returns the unique identifier of this program run.
func (lm *Manager) GetInstanceID() string {
	return lm.instanceID
}

// GetCurrentSessionDir returns the directory logs of this run are written to.
func (lm *Manager) GetCurrentSessionDir() string {
	return lm.currentSessionDir
}

// Close closes every log file opened by the manager.
func (lm *Manager) Close() {
	for _, w := range lm.writers {
		_ = w.Sync()
		_ = w.Close()
	}

	lm.writers = nil
}

// setupLogDirectories ensures the base directory exists, removes old
// sessions and creates the session directory for this run.
func (lm *Manager) setupLogDirectories() error {
	if err := os.MkdirAll(lm.logDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	if err := lm.rotateLogSessions(); err != nil {
		return fmt.Errorf("failed to rotate log sessions: %w", err)
	}

	lm.currentSessionDir = filepath.Join(lm.logDir, time.Now().Format("2006-01-02_15-04-05"))
	if err := os.MkdirAll(lm.currentSessionDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	return nil
}

// initLogger creates a zap logger writing to a line-capped file.
func (lm *Manager) initLogger(path string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(lm.level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	writer, err := logger.NewLogRotator(path, lm.maxLogLines)
	if err != nil {
		return nil, err
	}

	lm.writers = append(lm.writers, writer)

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(writer),
		zapLevel,
	)

	return zap.New(
		core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(
			zap.String("component", lm.serviceType.String()),
			zap.String("instance_id", lm.instanceID),
		),
	), nil
}

// rotateLogSessions removes the oldest session directories so that at most
// maxLogsToKeep remain, including the one about to be created.
func (lm *Manager) rotateLogSessions() error {
	sessions, err := filepath.Glob(filepath.Join(lm.logDir, "*"))
	if err != nil {
		return err
	}

	keep := max(lm.maxLogsToKeep-1, 0)
	if len(sessions) <= keep {
		return nil
	}

	modTimes := make(map[string]time.Time, len(sessions))
	for _, session := range sessions {
		if info, err := os.Stat(session); err == nil {
			modTimes[session] = info.ModTime()
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return modTimes[sessions[i]].Before(modTimes[sessions[j]])
	})

	for _, session := range sessions[:len(sessions)-keep] {
		if err := os.RemoveAll(session); err != nil {
			return err
		}
	}

	return nil
}
