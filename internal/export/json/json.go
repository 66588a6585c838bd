package json

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/robalyx/casebot/internal/export/types"
)

// Exporter handles exporting case logs to JSON files.
type Exporter struct {
	outDir string
}

// New creates a new JSON exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes the records to <name>.json as an indented array.
func (e *Exporter) Export(name string, records []*types.ExportRecord) error {
	if records == nil {
		records = []*types.ExportRecord{}
	}

	data, err := sonic.ConfigStd.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if err := os.WriteFile(filepath.Join(e.outDir, name+".json"), data, 0o600); err != nil {
		return fmt.Errorf("failed to write json file: %w", err)
	}

	return nil
}
