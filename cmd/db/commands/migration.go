package commands

import (
	"context"
	"fmt"

	"github.com/robalyx/casebot/internal/database"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// MigrationCommands returns the commands that manage the case log schema.
func MigrationCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:   "migrate",
			Usage:  "Apply pending case log migrations",
			Action: handleMigrate(deps),
		},
		{
			Name:   "rollback",
			Usage:  "Revert the most recently applied migration group",
			Action: handleRollback(deps),
		},
		{
			Name:   "status",
			Usage:  "List migrations and whether they are applied",
			Action: handleStatus(deps),
		},
		{
			Name:      "create",
			Usage:     "Create an empty Go migration in internal/database/migrations",
			ArgsUsage: "NAME",
			Action:    handleCreate(deps),
		},
	}
}

func handleMigrate(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		group, err := database.Migrate(ctx, deps.DB.Migrator())
		if err != nil {
			return err
		}

		if group.IsZero() {
			deps.Logger.Info("Case log schema is up to date")
			return nil
		}

		deps.Logger.Info("Applied migrations",
			zap.String("group", group.String()),
			zap.Int("count", len(group.Migrations)))

		return nil
	}
}

func handleRollback(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		migrator := deps.DB.Migrator()

		if err := migrator.Lock(ctx); err != nil {
			return fmt.Errorf("failed to acquire migration lock: %w", err)
		}
		defer migrator.Unlock(ctx) //nolint:errcheck // lock expires with the session

		group, err := migrator.Rollback(ctx)
		if err != nil {
			return fmt.Errorf("failed to roll back: %w", err)
		}

		if group.IsZero() {
			deps.Logger.Info("Nothing to roll back")
			return nil
		}

		deps.Logger.Info("Rolled back migrations",
			zap.String("group", group.String()),
			zap.Int("count", len(group.Migrations)))

		return nil
	}
}

func handleStatus(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		migrator := deps.DB.Migrator()

		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to initialize migration tables: %w", err)
		}

		ms, err := migrator.MigrationsWithStatus(ctx)
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}

		for _, m := range ms {
			deps.Logger.Info("Migration",
				zap.String("name", m.Name),
				zap.Bool("applied", m.IsApplied()),
				zap.Int64("group", m.GroupID))
		}

		deps.Logger.Info("Case log schema",
			zap.Int("migrations", len(ms)),
			zap.Int("pending", len(ms.Unapplied())))

		return nil
	}
}

func handleCreate(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() != 1 {
			return ErrNameRequired
		}

		mf, err := deps.DB.Migrator().CreateGoMigration(ctx, c.Args().First())
		if err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}

		deps.Logger.Info("Created migration", zap.String("path", mf.Path))

		return nil
	}
}
