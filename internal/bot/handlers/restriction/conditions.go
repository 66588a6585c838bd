package restriction

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/casebot/internal/moderation"
	"go.uber.org/zap"
)

// Hierarchy is the guild state the condition check compares actor and target against.
type Hierarchy struct {
	OwnerID uint64
	// ActorPosition is the position of the actor's highest role.
	ActorPosition int
	// TargetPosition is the position of the target's highest role.
	TargetPosition int
	// TargetIsMember is false when the target is not in the guild.
	TargetIsMember bool
}

// Deny returns the reason the actor may not apply action to the target,
// or an empty string when the action is allowed.
func Deny(req *moderation.Request, h Hierarchy, action string) string {
	switch {
	case req.Target.ID == req.Actor.ID:
		return fmt.Sprintf("You cannot %s yourself.", action)
	case req.Target.Bot:
		return fmt.Sprintf("You cannot %s a bot.", action)
	case req.Target.ID == h.OwnerID:
		return fmt.Sprintf("You cannot %s the server owner.", action)
	case req.Actor.ID != h.OwnerID && h.TargetIsMember && h.TargetPosition >= h.ActorPosition:
		return fmt.Sprintf("You cannot %s a user with a higher or equal role.", action)
	}

	return ""
}

// NewConditionFunc returns a condition check bound to the guild hierarchy of one invocation.
func NewConditionFunc(h Hierarchy, logger *zap.Logger) moderation.ConditionFunc {
	return func(ctx context.Context, req *moderation.Request, reply moderation.Replier, action string) bool {
		message := Deny(req, h, action)
		if message == "" {
			return true
		}

		logger.Debug("Action denied",
			zap.Uint64("guildID", req.GuildID),
			zap.Uint64("actorID", req.Actor.ID),
			zap.Uint64("targetID", req.Target.ID),
			zap.String("reason", message))

		if err := reply.Reply(ctx, message); err != nil {
			logger.Error("Failed to send denial", zap.Error(err))
		}

		return false
	}
}

// HighestRolePosition returns the highest position among the given roles.
// Members without roles sit at the position of @everyone.
func HighestRolePosition(roleIDs []snowflake.ID, roles []discord.Role) int {
	positions := make(map[snowflake.ID]int, len(roles))
	for _, role := range roles {
		positions[role.ID] = role.Position
	}

	highest := 0
	for _, id := range roleIDs {
		if position, ok := positions[id]; ok && position > highest {
			highest = position
		}
	}

	return highest
}
