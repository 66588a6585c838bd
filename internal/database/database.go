// Package database opens the PostgreSQL case log and exposes its models.
package database

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"net"
	"strconv"

	"github.com/robalyx/casebot/internal/database/migrations"
	"github.com/robalyx/casebot/internal/setup/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bunotel"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"
)

// Client is an open connection to the case log database.
type Client interface {
	// Model returns the case log models.
	Model() *Repository
	// Migrator returns a migrator bound to the case log schema.
	Migrator() *migrate.Migrator
	Close() error
}

type client struct {
	db       *bun.DB
	repo     *Repository
	migrator *migrate.Migrator
	logger   *zap.Logger
}

// NewConnection connects to PostgreSQL and verifies the connection.
// Schema changes are left to the migrator.
func NewConnection(ctx context.Context, cfg *config.PostgreSQL, logger *zap.Logger) (Client, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(connectorOptions(cfg)...))
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqldb.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	db := bun.NewDB(sqldb, pgdialect.New())
	db.AddQueryHook(NewHook(logger))
	db.AddQueryHook(bunotel.NewQueryHook(bunotel.WithDBName(cfg.DBName)))

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Connected to case log database",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.DBName),
		zap.Bool("tls", cfg.TLS))

	return &client{
		db:       db,
		repo:     NewRepository(db, logger),
		migrator: migrate.NewMigrator(db, migrations.Migrations),
		logger:   logger,
	}, nil
}

// connectorOptions translates the config into pgdriver options.
func connectorOptions(cfg *config.PostgreSQL) []pgdriver.Option {
	opts := []pgdriver.Option{
		pgdriver.WithAddr(net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))),
		pgdriver.WithUser(cfg.User),
		pgdriver.WithPassword(cfg.Password),
		pgdriver.WithDatabase(cfg.DBName),
		pgdriver.WithApplicationName("casebot"),
	}

	if cfg.TLS {
		return append(opts, pgdriver.WithTLSConfig(&tls.Config{
			ServerName: cfg.Host,
			MinVersion: tls.VersionTLS12,
		}))
	}

	return append(opts, pgdriver.WithInsecure(true))
}

// Migrate applies every pending migration as one group while holding the
// migration lock. A zero group means the schema was already current.
func Migrate(ctx context.Context, migrator *migrate.Migrator) (*migrate.MigrationGroup, error) {
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	if err := migrator.Lock(ctx); err != nil {
		return nil, fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	defer migrator.Unlock(ctx) //nolint:errcheck // lock expires with the session

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return group, nil
}

func (c *client) Model() *Repository {
	return c.repo
}

func (c *client) Migrator() *migrate.Migrator {
	return c.migrator
}

func (c *client) Close() error {
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	c.logger.Info("Database connection closed")
	return nil
}
