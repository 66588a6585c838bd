package restriction

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/casebot/internal/moderation"
	"go.uber.org/zap"
)

// MessageSender posts interaction follow-ups and channel messages.
type MessageSender interface {
	CreateFollowupMessage(
		applicationID snowflake.ID, interactionToken string, messageCreate discord.MessageCreate, opts ...rest.RequestOpt,
	) (*discord.Message, error)
	CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, opts ...rest.RequestOpt) (*discord.Message, error)
}

// InteractionReplier answers a deferred slash command with ephemeral follow-ups
// and mirrors recorded cases to the guild's mod-log channel.
type InteractionReplier struct {
	sender          MessageSender
	applicationID   snowflake.ID
	token           string
	modLogChannelID snowflake.ID
	logger          *zap.Logger
}

// NewInteractionReplier creates a replier for one interaction.
// A zero modLogChannelID disables the mod-log post.
func NewInteractionReplier(
	sender MessageSender, applicationID snowflake.ID, token string, modLogChannelID snowflake.ID, logger *zap.Logger,
) *InteractionReplier {
	return &InteractionReplier{
		sender:          sender,
		applicationID:   applicationID,
		token:           token,
		modLogChannelID: modLogChannelID,
		logger:          logger,
	}
}

// Reply sends an ephemeral follow-up.
func (r *InteractionReplier) Reply(ctx context.Context, content string) error {
	_, err := r.sender.CreateFollowupMessage(r.applicationID, r.token, discord.NewMessageCreateBuilder().
		SetContent(content).
		SetEphemeral(true).
		Build(), rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to send follow-up: %w", err)
	}
	return nil
}

// ReportCase sends the case embed to the invoker and the mod-log channel.
// A failed mod-log post is logged but does not fail the report.
func (r *InteractionReplier) ReportCase(ctx context.Context, report *moderation.CaseReport) error {
	embed := BuildCaseEmbed(report, time.Now())

	_, err := r.sender.CreateFollowupMessage(r.applicationID, r.token, discord.NewMessageCreateBuilder().
		SetEmbeds(embed).
		SetEphemeral(true).
		Build(), rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to send case report: %w", err)
	}

	if r.modLogChannelID == 0 {
		return nil
	}

	_, err = r.sender.CreateMessage(r.modLogChannelID, discord.NewMessageCreateBuilder().
		SetEmbeds(embed).
		Build(), rest.WithCtx(ctx))
	if err != nil {
		r.logger.Warn("Failed to post case to mod-log channel",
			zap.Uint64("channelID", uint64(r.modLogChannelID)),
			zap.Int64("caseNumber", report.CaseNumber),
			zap.Error(err))
	}

	return nil
}
