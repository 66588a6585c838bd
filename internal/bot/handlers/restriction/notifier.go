package restriction

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/casebot/internal/moderation"
	"go.uber.org/zap"
)

// DirectMessageSender opens DM channels and posts messages.
type DirectMessageSender interface {
	CreateDMChannel(userID snowflake.ID, opts ...rest.RequestOpt) (*discord.DMChannel, error)
	CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, opts ...rest.RequestOpt) (*discord.Message, error)
}

// DirectMessenger notifies the subject of an action by direct message.
type DirectMessenger struct {
	sender DirectMessageSender
	logger *zap.Logger
}

// NewDirectMessenger creates a DirectMessenger.
func NewDirectMessenger(sender DirectMessageSender, logger *zap.Logger) *DirectMessenger {
	return &DirectMessenger{
		sender: sender,
		logger: logger.Named("dm"),
	}
}

// SendDirectMessage makes one delivery attempt. Users with closed DMs are common,
// so failures are logged and reported as false.
func (d *DirectMessenger) SendDirectMessage(ctx context.Context, req *moderation.Request, reason, action string) bool {
	channel, err := d.sender.CreateDMChannel(snowflake.ID(req.Target.ID), rest.WithCtx(ctx))
	if err != nil {
		d.logger.Warn("Failed to open DM channel",
			zap.Uint64("targetID", req.Target.ID),
			zap.Error(err))
		return false
	}

	content := fmt.Sprintf("You have been %s from %s. Reason: %s", action, req.GuildName, reason)

	_, err = d.sender.CreateMessage(channel.ID(), discord.NewMessageCreateBuilder().
		SetContent(content).
		Build(), rest.WithCtx(ctx))
	if err != nil {
		d.logger.Warn("Failed to send DM",
			zap.Uint64("targetID", req.Target.ID),
			zap.Error(err))
		return false
	}

	return true
}
