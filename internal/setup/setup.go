package setup

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/robalyx/casebot/internal/database"
	"github.com/robalyx/casebot/internal/setup/config"
	"github.com/robalyx/casebot/internal/setup/telemetry"
	"go.uber.org/zap"
)

// ErrMigrationsPending is returned when migrations are pending and were not approved.
var ErrMigrationsPending = errors.New("database migrations are pending")

// App bundles all core dependencies and services needed by the application.
// Each field represents a major subsystem that needs initialization and cleanup.
type App struct {
	Config        *config.Config            // Application configuration
	Logger        *zap.Logger               // Main application logger
	DBLogger      *zap.Logger               // Database-specific logger
	DB            database.Client           // Database connection pool
	LogManager    *telemetry.Manager        // Log management system
	shutdownTrace func(ctx context.Context) // Flushes pending spans
}

// Options controls optional parts of application startup.
type Options struct {
	// AutoMigrate applies pending migrations without prompting.
	AutoMigrate bool
	// SkipDatabase leaves DB nil for services that do not need it.
	SkipDatabase bool
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
func InitializeApp(
	ctx context.Context, serviceType telemetry.ServiceType, logDir string, opts Options,
) (*App, error) {
	// Load app configuration
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logManager := telemetry.NewManager(serviceType, logDir, &cfg.Common.Debug)

	logger, dbLogger, err := logManager.GetLoggers()
	if err != nil {
		return nil, err
	}

	shutdownTrace := telemetry.SetupTracing(serviceType, &cfg.Common.Telemetry, logger)

	var db database.Client
	if !opts.SkipDatabase {
		// Initialize database with migration check
		db, err = connectAndMigrate(ctx, &cfg.Common.PostgreSQL, dbLogger, opts.AutoMigrate)
		if err != nil {
			shutdownTrace(ctx)
			logManager.Close()
			return nil, err
		}
	}

	logger.Info("Application initialized",
		zap.String("service", serviceType.String()),
		zap.String("instanceID", logManager.GetInstanceID()))

	// Bundle all initialized components
	return &App{
		Config:        cfg,
		Logger:        logger,
		DBLogger:      dbLogger.Named("database"),
		DB:            db,
		LogManager:    logManager,
		shutdownTrace: shutdownTrace,
	}, nil
}

// Cleanup ensures graceful shutdown of all components in reverse initialization order.
// Logs but does not fail on cleanup errors to ensure all components get cleanup attempts.
func (s *App) Cleanup(ctx context.Context) {
	// Close database connections
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			s.Logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	// Flush pending spans
	s.shutdownTrace(ctx)

	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}

	s.LogManager.Close()
}

// connectAndMigrate opens the database and applies pending migrations,
// asking on stdin first unless autoMigrate is set.
func connectAndMigrate(
	ctx context.Context, cfg *config.PostgreSQL, dbLogger *zap.Logger, autoMigrate bool,
) (database.Client, error) {
	db, err := database.NewConnection(ctx, cfg, dbLogger)
	if err != nil {
		return nil, err
	}

	pending, err := pendingMigrations(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if pending == 0 {
		return db, nil
	}

	if !autoMigrate && !confirm(fmt.Sprintf("%d database migrations are pending. Run them now? (y/N)", pending)) {
		_ = db.Close()
		return nil, ErrMigrationsPending
	}

	group, err := database.Migrate(ctx, db.Migrator())
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	dbLogger.Info("Applied migrations", zap.String("group", group.String()), zap.Int("count", pending))

	return db, nil
}

func pendingMigrations(ctx context.Context, db database.Client) (int, error) {
	migrator := db.Migrator()

	if err := migrator.Init(ctx); err != nil {
		return 0, fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	ms, err := migrator.MigrationsWithStatus(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check migration status: %w", err)
	}

	return len(ms.Unapplied()), nil
}

func confirm(prompt string) bool {
	log.Print(prompt)

	var response string
	_, _ = fmt.Scanln(&response)

	return response == "y" || response == "Y"
}
