package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robalyx/casebot/internal/bot"
	"github.com/robalyx/casebot/internal/redis"
	"github.com/robalyx/casebot/internal/setup"
	"github.com/robalyx/casebot/internal/setup/telemetry"
	"github.com/urfave/cli/v3"
)

const (
	// BotLogDir specifies where bot log files are stored.
	BotLogDir = "logs/bot_logs"

	// shutdownTimeout bounds how long shutdown waits for the gateway and exporters.
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "bot",
		Usage: "Run the moderation bot",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "auto-migrate",
				Usage: "Apply pending database migrations without prompting",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runBot(ctx, c.Bool("auto-migrate"))
		},
	}

	return app.Run(context.Background(), os.Args)
}

func runBot(ctx context.Context, autoMigrate bool) error {
	// Initialize application with required dependencies
	app, err := setup.InitializeApp(ctx, telemetry.ServiceBot, BotLogDir, setup.Options{AutoMigrate: autoMigrate})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		app.Cleanup(shutdownCtx)
	}()

	cooldownClient, err := redis.Connect(ctx, &app.Config.Common.Redis, app.Logger)
	if err != nil {
		return err
	}
	defer cooldownClient.Close()

	// Create bot instance
	discordBot, err := bot.New(&app.Config.Bot, app.DB.Model().Case(), cooldownClient, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	// Start the bot and connect to Discord
	if err := discordBot.Start(ctx); err != nil {
		return fmt.Errorf("failed to start bot: %w", err)
	}

	log.Println("Bot has been started. Waiting for interrupt signal to gracefully shutdown...")

	// Wait for interrupt signal to gracefully shutdown the bot
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	// Cleanly close down the Discord session
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	discordBot.Close(shutdownCtx)

	return nil
}
