package moderation_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalyx/casebot/internal/database/types"
	"github.com/robalyx/casebot/internal/database/types/enum"
	"github.com/robalyx/casebot/internal/moderation"
)

var errStoreDown = errors.New("connection refused")

// memoryStore is an in-memory case log.
type memoryStore struct {
	mu        sync.Mutex
	cases     []*types.Case
	counters  map[uint64]int64
	insertErr error
	readErr   error
	inserts   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{counters: make(map[uint64]int64)}
}

func (s *memoryStore) GetAllCasesByType(
	_ context.Context, guildID uint64, caseType enum.CaseType,
) ([]*types.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readErr != nil {
		return nil, s.readErr
	}

	var result []*types.Case

	for _, c := range s.cases {
		if c.GuildID == guildID && c.Type == caseType {
			result = append(result, c)
		}
	}

	return result, nil
}

func (s *memoryStore) InsertCase(
	_ context.Context, userID, moderatorID uint64, caseType enum.CaseType, reason string, guildID uint64,
) (*types.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.insertErr != nil {
		return nil, s.insertErr
	}

	s.counters[guildID]++
	s.inserts++

	record := &types.Case{
		ID:          int64(len(s.cases) + 1),
		GuildID:     guildID,
		CaseNumber:  s.counters[guildID],
		UserID:      userID,
		ModeratorID: moderatorID,
		Type:        caseType,
		Reason:      reason,
		CreatedAt:   time.Now(),
	}
	s.cases = append(s.cases, record)

	return record, nil
}

// seed appends n cases of caseType for user without going through InsertCase.
func (s *memoryStore) seed(guildID, userID uint64, caseType enum.CaseType, n int) {
	for range n {
		s.counters[guildID]++
		s.cases = append(s.cases, &types.Case{
			GuildID:    guildID,
			CaseNumber: s.counters[guildID],
			UserID:     userID,
			Type:       caseType,
		})
	}
}

// recordingReplier captures everything sent to the invoker.
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

// stubNotifier returns a fixed delivery result and counts attempts.
type stubNotifier struct {
	delivered  bool
	attempts   int
	lastAction string
	lastReason string
}

func (n *stubNotifier) SendDirectMessage(_ context.Context, _ *moderation.Request, reason, action string) bool {
	n.attempts++
	n.lastAction = action
	n.lastReason = reason

	return n.delivered
}

func allow(context.Context, *moderation.Request, moderation.Replier, string) bool {
	return true
}
