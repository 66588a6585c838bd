package types

import "time"

// Guild tracks per-guild moderation bookkeeping.
type Guild struct {
	ID        uint64    `bun:",pk"`
	CaseCount int64     `bun:",notnull,default:0"` // Last case number handed out
	CreatedAt time.Time `bun:",notnull"`
}
