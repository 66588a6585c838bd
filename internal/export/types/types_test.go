package types_test

import (
	"testing"
	"time"

	dbTypes "github.com/robalyx/casebot/internal/database/types"
	"github.com/robalyx/casebot/internal/database/types/enum"
	"github.com/robalyx/casebot/internal/export/types"
	"github.com/stretchr/testify/assert"
)

func TestNewExportRecord(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 10, 19, 14, 30, 0, 0, time.FixedZone("EST", -5*3600))

	record := types.NewExportRecord(&dbTypes.Case{
		ID:          99,
		GuildID:     100,
		CaseNumber:  4,
		UserID:      200,
		ModeratorID: 300,
		Type:        enum.CaseTypeSnippetBan,
		Reason:      "spam",
		CreatedAt:   created,
	})

	assert.Equal(t, &types.ExportRecord{
		GuildID:     100,
		CaseNumber:  4,
		Type:        "SNIPPETBAN",
		UserID:      200,
		ModeratorID: 300,
		Reason:      "spam",
		CreatedAt:   created.UTC(),
	}, record)
}
