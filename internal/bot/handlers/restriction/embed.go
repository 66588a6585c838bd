package restriction

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/robalyx/casebot/internal/bot/constants"
	"github.com/robalyx/casebot/internal/bot/utils"
	"github.com/robalyx/casebot/internal/database/types/enum"
	"github.com/robalyx/casebot/internal/moderation"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Embed field values are capped by Discord at 1024 characters.
const maxFieldLength = 1024

// BuildCaseEmbed renders a recorded case.
func BuildCaseEmbed(report *moderation.CaseReport, now time.Time) discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("Case #%d (%s)", report.CaseNumber, CaseTypeTitle(report.Type))).
		AddField("Moderator", utils.FormatUser(report.Moderator.Name, report.Moderator.ID), true).
		AddField("Target", utils.FormatUser(report.Target.Name, report.Target.ID), true).
		AddField("Reason", utils.TruncateString(report.Reason, maxFieldLength), false).
		SetFooterText(notificationStatus(report)).
		SetColor(caseColor(report.Type)).
		SetTimestamp(now).
		Build()
}

// CaseTypeTitle returns the case type in title case, e.g. "Snippetban".
func CaseTypeTitle(t enum.CaseType) string {
	return cases.Title(language.English).String(strings.ToLower(t.String()))
}

func notificationStatus(report *moderation.CaseReport) string {
	switch {
	case report.Silent:
		return "Silent: no DM sent"
	case report.DMSent:
		return "DM sent"
	default:
		return "DM not sent"
	}
}

// caseColor is red for types that restrict and green for types that lift a restriction.
func caseColor(t enum.CaseType) int {
	if _, restricts := t.Inverse(); restricts {
		return constants.RestrictEmbedColor
	}

	for _, candidate := range enum.CaseTypeValues() {
		if lift, ok := candidate.Inverse(); ok && lift == t {
			return constants.LiftEmbedColor
		}
	}

	return constants.DefaultEmbedColor
}
