package types

import (
	"time"

	dbTypes "github.com/robalyx/casebot/internal/database/types"
)

// ExportRecord represents a case in an export file.
type ExportRecord struct {
	GuildID     uint64    `json:"guildId,string"`
	CaseNumber  int64     `json:"caseNumber"`
	Type        string    `json:"type"`
	UserID      uint64    `json:"userId,string"`
	ModeratorID uint64    `json:"moderatorId,string"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewExportRecord converts a stored case into an export record.
func NewExportRecord(c *dbTypes.Case) *ExportRecord {
	return &ExportRecord{
		GuildID:     c.GuildID,
		CaseNumber:  c.CaseNumber,
		Type:        c.Type.String(),
		UserID:      c.UserID,
		ModeratorID: c.ModeratorID,
		Reason:      c.Reason,
		CreatedAt:   c.CreatedAt.UTC(),
	}
}
