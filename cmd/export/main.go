package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robalyx/casebot/internal/export"
	"github.com/robalyx/casebot/internal/setup"
	"github.com/robalyx/casebot/internal/setup/telemetry"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	// ExportLogDir specifies where export log files are stored.
	ExportLogDir = "logs/export_logs"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "export",
		Usage: "Export guild case logs to various file formats",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "exports",
				Usage:   "Base output directory for export files",
			},
			&cli.UintSliceFlag{
				Name:    "guild",
				Aliases: []string{"g"},
				Usage:   "Guild IDs to export (defaults to every configured guild)",
			},
			&cli.StringSliceFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Formats to write: sqlite, csv, json (defaults to all)",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Export description",
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Usage:   "Number of guilds exported at once",
				Value:   2,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			formats, err := export.ParseFormats(c.StringSlice("format"))
			if err != nil {
				return err
			}

			// Initialize application with required dependencies
			app, err := setup.InitializeApp(ctx, telemetry.ServiceExport, ExportLogDir, setup.Options{})
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer app.Cleanup(ctx)

			guildIDs := c.UintSlice("guild")
			if len(guildIDs) == 0 {
				for _, guild := range app.Config.Bot.Guilds {
					guildIDs = append(guildIDs, guild.ID)
				}
			}

			// Create timestamped output directory
			timestamp := time.Now().UTC().Format("2006-01-02_150405")
			outDir := filepath.Join(c.String("output"), timestamp)
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			exporter := export.New(app.DB.Model().Case(), outDir, &export.Config{
				Description: c.String("description"),
				Formats:     formats,
				Concurrency: int(c.Int("concurrency")),
			}, app.Logger)

			manifest, err := exporter.ExportGuilds(ctx, guildIDs)
			if err != nil {
				return fmt.Errorf("failed to export cases: %w", err)
			}

			app.Logger.Info("Export completed",
				zap.String("directory", outDir),
				zap.Int("guilds", len(manifest.Guilds)))

			return nil
		},
	}

	return app.Run(context.Background(), os.Args)
}
