package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/robalyx/casebot/cmd/db/commands"
	"github.com/robalyx/casebot/internal/database"
	"github.com/robalyx/casebot/internal/setup/config"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Setup dependencies
	deps, err := setupDependencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to setup dependencies: %w", err)
	}
	defer deps.DB.Close()

	app := &cli.Command{
		Name:     "db",
		Usage:    "Database management tool",
		Commands: append(commands.MigrationCommands(deps), commands.CaseCommands(deps)...),
	}

	return app.Run(ctx, os.Args)
}

// setupDependencies connects to the case log database.
func setupDependencies(ctx context.Context) (*commands.CLIDependencies, error) {
	// Load full configuration
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Create development logger
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.NewConnection(ctx, &cfg.Common.PostgreSQL, logger)
	if err != nil {
		return nil, err
	}

	return &commands.CLIDependencies{DB: db, Logger: logger}, nil
}
