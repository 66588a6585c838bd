package sqlite_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	exportSQLite "github.com/robalyx/casebot/internal/export/sqlite"
	"github.com/robalyx/casebot/internal/export/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

func testRecords() []*types.ExportRecord {
	created := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	return []*types.ExportRecord{
		{
			GuildID:     100,
			CaseNumber:  1,
			Type:        "SNIPPETBAN",
			UserID:      200,
			ModeratorID: 300,
			Reason:      "reason with ' single quote",
			CreatedAt:   created,
		},
		{
			GuildID:     100,
			CaseNumber:  2,
			Type:        "SNIPPETUNBAN",
			UserID:      200,
			ModeratorID: 301,
			Reason:      "reason with \" double quote",
			CreatedAt:   created.Add(time.Hour),
		},
	}
}

// readCases returns every row of the cases table ordered by case number.
func readCases(t *testing.T, path string) []*types.ExportRecord {
	t.Helper()

	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	require.NoError(t, err)
	defer conn.Close()

	var records []*types.ExportRecord
	err = sqlitex.ExecuteTransient(conn,
		"SELECT case_number, type, user_id, reason, created_at FROM cases ORDER BY case_number",
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				created, err := time.Parse(time.RFC3339, stmt.ColumnText(4))
				if err != nil {
					return err
				}

				records = append(records, &types.ExportRecord{
					CaseNumber: stmt.ColumnInt64(0),
					Type:       stmt.ColumnText(1),
					Reason:     stmt.ColumnText(3),
					CreatedAt:  created,
				})
				assert.Equal(t, "200", stmt.ColumnText(2))
				return nil
			},
		})
	require.NoError(t, err)

	return records
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	records := testRecords()

	require.NoError(t, exportSQLite.New(tempDir).Export("cases_100", records))

	got := readCases(t, filepath.Join(tempDir, "cases_100.db"))
	require.Len(t, got, len(records))
	for i, expected := range records {
		assert.Equal(t, expected.CaseNumber, got[i].CaseNumber)
		assert.Equal(t, expected.Type, got[i].Type)
		assert.Equal(t, expected.Reason, got[i].Reason)
		assert.True(t, expected.CreatedAt.Equal(got[i].CreatedAt))
	}
}

func TestExporter_EmptyRecords(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	require.NoError(t, exportSQLite.New(tempDir).Export("cases_100", nil))
	assert.Empty(t, readCases(t, filepath.Join(tempDir, "cases_100.db")))
}

func TestExporter_DuplicateCaseNumber(t *testing.T) {
	t.Parallel()

	records := testRecords()
	records[1].CaseNumber = records[0].CaseNumber

	err := exportSQLite.New(t.TempDir()).Export("cases_100", records)
	assert.Error(t, err)
}

func TestExporter_ReplacesExistingFile(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "cases_100.db")
	require.NoError(t, os.WriteFile(path, []byte("invalid sqlite db"), 0o600))

	require.NoError(t, exportSQLite.New(tempDir).Export("cases_100", testRecords()))
	assert.Len(t, readCases(t, path), 2)
}
