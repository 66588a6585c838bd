package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/robalyx/casebot/internal/export/types"
)

// Header is the first row of every exported file.
var Header = []string{ //nolint:gochecknoglobals // -
	"guild_id", "case_number", "type", "user_id", "moderator_id", "reason", "created_at",
}

// Exporter handles exporting case logs to csv files.
type Exporter struct {
	outDir string
}

// New creates a new csv exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes the records to <name>.csv, replacing any existing file.
func (e *Exporter) Export(name string, records []*types.ExportRecord) error {
	file, err := os.Create(filepath.Join(e.outDir, name+".csv"))
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	// Create CSV writer
	writer := csv.NewWriter(file)

	// Write header
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// Write each record
	for _, record := range records {
		if err := writer.Write([]string{
			strconv.FormatUint(record.GuildID, 10),
			strconv.FormatInt(record.CaseNumber, 10),
			record.Type,
			strconv.FormatUint(record.UserID, 10),
			strconv.FormatUint(record.ModeratorID, 10),
			record.Reason,
			record.CreatedAt.Format(time.RFC3339),
		}); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv file: %w", err)
	}

	return nil
}
