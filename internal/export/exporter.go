package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	dbTypes "github.com/robalyx/casebot/internal/database/types"
	"github.com/robalyx/casebot/internal/export/csv"
	"github.com/robalyx/casebot/internal/export/json"
	"github.com/robalyx/casebot/internal/export/sqlite"
	"github.com/robalyx/casebot/internal/export/types"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents a supported export format.
type Format string

const (
	FormatSQLite Format = "sqlite"
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
)

const (
	// EngineVersion represents the version of the export engine.
	// This should be updated when making breaking changes to the export format.
	EngineVersion = "1.0.0"

	// caseBatchSize is the number of cases read from the database at once.
	caseBatchSize = 500
)

// CaseSource streams the case log of a guild.
type CaseSource interface {
	GetGuildCases(ctx context.Context, guildID uint64, batchSize int, fn func([]*dbTypes.Case) error) error
}

// Config holds the configuration for exports.
type Config struct {
	Description string   `json:"description"`
	Formats     []Format `json:"formats"`
	Concurrency int      `json:"-"`
}

// Manifest describes a finished export.
type Manifest struct {
	EngineVersion string         `json:"engineVersion"`
	Description   string         `json:"description"`
	Formats       []Format       `json:"formats"`
	ExportedAt    time.Time      `json:"exportedAt"`
	Guilds        map[string]int `json:"guilds"`
}

// Exporter handles exporting guild case logs.
type Exporter struct {
	source CaseSource
	outDir string
	config *Config
	logger *zap.Logger
}

// New creates a new exporter instance.
func New(source CaseSource, outDir string, config *Config, logger *zap.Logger) *Exporter {
	return &Exporter{
		source: source,
		outDir: outDir,
		config: config,
		logger: logger.Named("export"),
	}
}

// ParseFormats validates format names. An empty list selects every format.
func ParseFormats(names []string) ([]Format, error) {
	if len(names) == 0 {
		return []Format{FormatSQLite, FormatCSV, FormatJSON}, nil
	}

	formats := make([]Format, 0, len(names))
	for _, name := range names {
		switch format := Format(name); format {
		case FormatSQLite, FormatCSV, FormatJSON:
			formats = append(formats, format)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
		}
	}

	return formats, nil
}

// ExportGuilds exports the case log of every guild in every configured format.
// Guilds are processed concurrently; the first failure cancels the rest.
func (e *Exporter) ExportGuilds(ctx context.Context, guildIDs []uint64) (*Manifest, error) {
	for _, format := range e.config.Formats {
		if _, err := e.writer(format); err != nil {
			return nil, err
		}
	}

	counts := make([]int, len(guildIDs))

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(max(e.config.Concurrency, 1))

	for i, guildID := range guildIDs {
		p.Go(func(ctx context.Context) error {
			count, err := e.exportGuild(ctx, guildID)
			if err != nil {
				return fmt.Errorf("failed to export guild %d: %w", guildID, err)
			}

			counts[i] = count
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	manifest := &Manifest{
		EngineVersion: EngineVersion,
		Description:   e.config.Description,
		Formats:       e.config.Formats,
		ExportedAt:    time.Now().UTC(),
		Guilds:        make(map[string]int, len(guildIDs)),
	}
	for i, guildID := range guildIDs {
		manifest.Guilds[fmt.Sprint(guildID)] = counts[i]
	}

	if err := e.writeManifest(manifest); err != nil {
		return nil, err
	}

	return manifest, nil
}

// exportGuild reads a guild's cases and writes them in every format.
func (e *Exporter) exportGuild(ctx context.Context, guildID uint64) (int, error) {
	var records []*types.ExportRecord

	err := e.source.GetGuildCases(ctx, guildID, caseBatchSize, func(batch []*dbTypes.Case) error {
		for _, c := range batch {
			records = append(records, types.NewExportRecord(c))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CaseNumber < records[j].CaseNumber
	})

	name := fmt.Sprintf("cases_%d", guildID)
	for _, format := range e.config.Formats {
		writer, _ := e.writer(format)
		if err := writer.Export(name, records); err != nil {
			return 0, fmt.Errorf("failed to write %s format: %w", format, err)
		}
	}

	e.logger.Info("Exported guild cases",
		zap.Uint64("guildID", guildID),
		zap.Int("count", len(records)))

	return len(records), nil
}

// fileWriter writes one file per guild in a single format.
type fileWriter interface {
	Export(name string, records []*types.ExportRecord) error
}

// writer returns the file writer for a format.
func (e *Exporter) writer(format Format) (fileWriter, error) {
	switch format {
	case FormatSQLite:
		return sqlite.New(e.outDir), nil
	case FormatCSV:
		return csv.New(e.outDir), nil
	case FormatJSON:
		return json.New(e.outDir), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// writeManifest saves export_config.json next to the exported files.
func (e *Exporter) writeManifest(manifest *Manifest) error {
	data, err := sonic.MarshalIndent(manifest, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal export manifest: %w", err)
	}

	if err := os.WriteFile(filepath.Join(e.outDir, "export_config.json"), data, 0o600); err != nil {
		return fmt.Errorf("failed to write export manifest: %w", err)
	}

	return nil
}
