package types

import (
	"time"

	"github.com/robalyx/casebot/internal/database/types/enum"
)

// Case is an immutable record of a moderation action taken in a guild.
type Case struct {
	ID          int64         `bun:",pk,autoincrement"`
	GuildID     uint64        `bun:",notnull"`           // Guild the action was taken in
	CaseNumber  int64         `bun:",notnull"`           // Per-guild sequence, starting at 1
	UserID      uint64        `bun:",notnull"`           // Subject of the action
	ModeratorID uint64        `bun:",notnull"`           // Moderator who issued the action
	Type        enum.CaseType `bun:",notnull"`           // Kind of action
	Reason      string        `bun:",type:text,notnull"` // Moderator supplied reason
	CreatedAt   time.Time     `bun:",notnull"`           // When the case was recorded
}

// CountForUser returns how many of the given cases have userID as their subject.
func CountForUser(cases []*Case, userID uint64) int {
	count := 0

	for _, c := range cases {
		if c.UserID == userID {
			count++
		}
	}

	return count
}
