// Package moderation implements toggled moderation restrictions recorded in the case log.
//
// A restriction such as a snippet ban has no stored flag. Whether it is in effect
// is derived from the guild's cases every time it is needed.
package moderation

import (
	"context"
	"fmt"

	"github.com/robalyx/casebot/internal/database/types"
	"github.com/robalyx/casebot/internal/database/types/enum"
)

// DefaultReason is recorded when a moderator gives no reason.
const DefaultReason = "No reason provided"

// CaseStore reads and appends to a guild's case log.
type CaseStore interface {
	GetAllCasesByType(ctx context.Context, guildID uint64, caseType enum.CaseType) ([]*types.Case, error)
	InsertCase(
		ctx context.Context, userID, moderatorID uint64, caseType enum.CaseType, reason string, guildID uint64,
	) (*types.Case, error)
}

// Replier sends responses back to whoever invoked an action.
type Replier interface {
	// Reply sends a plain message to the invoker.
	Reply(ctx context.Context, content string) error
	// ReportCase sends the outcome of a recorded case.
	ReportCase(ctx context.Context, report *CaseReport) error
}

// Notifier delivers a direct message to the subject of an action.
type Notifier interface {
	// SendDirectMessage reports whether the message was delivered.
	SendDirectMessage(ctx context.Context, req *Request, reason, action string) bool
}

// ConditionFunc decides whether the actor may apply action to the target.
// When it denies, it has already told the invoker why.
type ConditionFunc func(ctx context.Context, req *Request, reply Replier, action string) bool

// User identifies a Discord user taking part in an action.
type User struct {
	ID   uint64
	Name string
	Bot  bool
}

// String returns the display name of the user.
func (u User) String() string {
	if u.Name == "" {
		return fmt.Sprintf("<@%d>", u.ID)
	}

	return u.Name
}

// Request carries a single invocation of an action.
type Request struct {
	GuildID   uint64
	GuildName string
	Actor     User
	Target    User
	Reason    *string
	Silent    bool
}

// ReasonOrDefault returns the supplied reason, or DefaultReason when none was given.
func (r *Request) ReasonOrDefault() string {
	if r.Reason == nil {
		return DefaultReason
	}

	return *r.Reason
}

// CaseReport describes a recorded case for the invoker.
type CaseReport struct {
	Type       enum.CaseType
	CaseNumber int64
	Reason     string
	Target     User
	Moderator  User
	DMSent     bool
	Silent     bool
}

// Status is the path an invocation took.
type Status int

const (
	// StatusRecorded means a case was inserted and reported.
	StatusRecorded Status = iota
	// StatusAlreadyApplied means the restriction was already in the requested state.
	StatusAlreadyApplied
	// StatusDenied means the condition check refused the action.
	StatusDenied
	// StatusFailed means a store call failed and the error was reported.
	StatusFailed
)

// String returns a lowercase name for logs and span attributes.
func (s Status) String() string {
	switch s {
	case StatusRecorded:
		return "recorded"
	case StatusAlreadyApplied:
		return "already_applied"
	case StatusDenied:
		return "denied"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of an invocation.
type Result struct {
	Status   Status
	Case     *types.Case
	Reason   string
	Notified bool
	Err      error
}
