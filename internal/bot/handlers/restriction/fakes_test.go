package restriction_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/casebot/internal/database/types"
	"github.com/robalyx/casebot/internal/database/types/enum"
	"github.com/robalyx/casebot/internal/moderation"
)

var errUnavailable = errors.New("service unavailable")

type sentMessage struct {
	channelID snowflake.ID
	token     string
	message   discord.MessageCreate
}

// fakeSender records every outgoing REST call.
type fakeSender struct {
	mu         sync.Mutex
	followups  []sentMessage
	messages   []sentMessage
	dmUsers    []snowflake.ID
	dmErr      error
	messageErr error
	followErr  error
	guild      discord.Guild
	roles      []discord.Role
	guildErr   error
}

func (f *fakeSender) CreateFollowupMessage(
	_ snowflake.ID, token string, messageCreate discord.MessageCreate, _ ...rest.RequestOpt,
) (*discord.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.followErr != nil {
		return nil, f.followErr
	}
	f.followups = append(f.followups, sentMessage{token: token, message: messageCreate})
	return &discord.Message{}, nil
}

func (f *fakeSender) CreateMessage(
	channelID snowflake.ID, messageCreate discord.MessageCreate, _ ...rest.RequestOpt,
) (*discord.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.messageErr != nil {
		return nil, f.messageErr
	}
	f.messages = append(f.messages, sentMessage{channelID: channelID, message: messageCreate})
	return &discord.Message{}, nil
}

func (f *fakeSender) CreateDMChannel(userID snowflake.ID, _ ...rest.RequestOpt) (*discord.DMChannel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dmErr != nil {
		return nil, f.dmErr
	}
	f.dmUsers = append(f.dmUsers, userID)
	return &discord.DMChannel{}, nil
}

func (f *fakeSender) GetGuild(snowflake.ID, bool, ...rest.RequestOpt) (*discord.RestGuild, error) {
	if f.guildErr != nil {
		return nil, f.guildErr
	}
	return &discord.RestGuild{Guild: f.guild}, nil
}

func (f *fakeSender) GetRoles(snowflake.ID, ...rest.RequestOpt) ([]discord.Role, error) {
	return f.roles, nil
}

// recordingReplier captures replies and case reports.
type recordingReplier struct {
	replies []string
	reports []*moderation.CaseReport
}

func (r *recordingReplier) Reply(_ context.Context, content string) error {
	r.replies = append(r.replies, content)
	return nil
}

func (r *recordingReplier) ReportCase(_ context.Context, report *moderation.CaseReport) error {
	r.reports = append(r.reports, report)
	return nil
}

// memoryCases is an in-memory case log.
type memoryCases struct {
	mu    sync.Mutex
	cases []*types.Case
}

func (m *memoryCases) GetAllCasesByType(
	_ context.Context, guildID uint64, caseType enum.CaseType,
) ([]*types.Case, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*types.Case
	for _, c := range m.cases {
		if c.GuildID == guildID && c.Type == caseType {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *memoryCases) InsertCase(
	_ context.Context, userID, moderatorID uint64, caseType enum.CaseType, reason string, guildID uint64,
) (*types.Case, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record := &types.Case{
		ID:          int64(len(m.cases) + 1),
		GuildID:     guildID,
		CaseNumber:  int64(len(m.cases) + 1),
		UserID:      userID,
		ModeratorID: moderatorID,
		Type:        caseType,
		Reason:      reason,
		CreatedAt:   time.Now(),
	}
	m.cases = append(m.cases, record)
	return record, nil
}

func (m *memoryCases) all() []*types.Case {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*types.Case(nil), m.cases...)
}

// fakeLimiter counts cooldown claims and releases.
type fakeLimiter struct {
	mu        sync.Mutex
	blocked   bool
	remaining time.Duration
	err       error
	acquired  int
	released  int
}

func (l *fakeLimiter) Acquire(context.Context, uint64, uint64, string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.err != nil {
		return false, 0, l.err
	}
	if l.blocked {
		return false, l.remaining, nil
	}
	l.acquired++
	return true, 0, nil
}

func (l *fakeLimiter) Release(context.Context, uint64, uint64, string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.released++
	return nil
}
