package moderation

import (
	"context"
	"fmt"

	"github.com/robalyx/casebot/internal/database/types"
	"github.com/robalyx/casebot/internal/database/types/enum"
)

// StatusEvaluator derives restriction state from the case log.
type StatusEvaluator struct {
	cases CaseStore
}

// NewStatusEvaluator creates a StatusEvaluator reading from cases.
func NewStatusEvaluator(cases CaseStore) *StatusEvaluator {
	return &StatusEvaluator{cases: cases}
}

// IsBanned reports whether the user has more banType cases than unbanType cases in the guild.
// Equal counts mean not banned. Order of the cases is irrelevant.
func (e *StatusEvaluator) IsBanned(
	ctx context.Context, guildID, userID uint64, banType, unbanType enum.CaseType,
) (bool, error) {
	banCases, err := e.cases.GetAllCasesByType(ctx, guildID, banType)
	if err != nil {
		return false, fmt.Errorf("failed to get %s cases: %w", banType, err)
	}

	unbanCases, err := e.cases.GetAllCasesByType(ctx, guildID, unbanType)
	if err != nil {
		return false, fmt.Errorf("failed to get %s cases: %w", unbanType, err)
	}

	return types.CountForUser(banCases, userID) > types.CountForUser(unbanCases, userID), nil
}

// IsSnippetBanned reports whether the user is currently snippet banned in the guild.
func (e *StatusEvaluator) IsSnippetBanned(ctx context.Context, guildID, userID uint64) (bool, error) {
	return e.IsBanned(ctx, guildID, userID, enum.CaseTypeSnippetBan, enum.CaseTypeSnippetUnban)
}
