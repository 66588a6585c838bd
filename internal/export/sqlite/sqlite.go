package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robalyx/casebot/internal/export/types"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Exporter handles exporting case logs to SQLite databases.
type Exporter struct {
	outDir string
}

// New creates a new SQLite exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes the records to <name>.db, replacing any existing file.
func (e *Exporter) Export(name string, records []*types.ExportRecord) error {
	filename := name + ".db"
	path := filepath.Join(e.outDir, filename)

	// Remove existing file if it exists
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing file %s: %w", filename, err)
	}

	// Open database
	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate|sqlite.OpenReadWrite)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer conn.Close()

	// Create table
	err = sqlitex.ExecuteScript(conn, `
		CREATE TABLE cases (
			guild_id TEXT NOT NULL,
			case_number INTEGER NOT NULL,
			type TEXT NOT NULL,
			user_id TEXT NOT NULL,
			moderator_id TEXT NOT NULL,
			reason TEXT NOT NULL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (guild_id, case_number)
		);
		CREATE INDEX idx_cases_user ON cases (user_id);
	`, nil)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	// Insert records in batches
	const batchSize = 1000
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))

		if err := insertBatch(conn, records[i:end]); err != nil {
			return err
		}
	}

	return nil
}

// insertBatch inserts records inside a single transaction.
func insertBatch(conn *sqlite.Conn, records []*types.ExportRecord) (err error) {
	defer sqlitex.Save(conn)(&err)

	for _, record := range records {
		err = sqlitex.Execute(conn,
			"INSERT INTO cases (guild_id, case_number, type, user_id, moderator_id, reason, created_at) "+
				"VALUES (?, ?, ?, ?, ?, ?, ?)",
			&sqlitex.ExecOptions{
				Args: []any{
					fmt.Sprint(record.GuildID),
					record.CaseNumber,
					record.Type,
					fmt.Sprint(record.UserID),
					fmt.Sprint(record.ModeratorID),
					record.Reason,
					record.CreatedAt.Format(time.RFC3339),
				},
			})
		if err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	return nil
}
