// Package permission maps guild members to numeric permission levels.
package permission

import (
	"slices"

	"github.com/robalyx/casebot/internal/bot/constants"
	"github.com/robalyx/casebot/internal/setup/config"
)

// Member is the subset of a guild member the resolver needs.
type Member struct {
	ID            uint64
	RoleIDs       []uint64
	Administrator bool
}

// Resolver computes permission levels from the bot configuration.
type Resolver struct {
	config *config.BotConfig
}

// NewResolver creates a resolver backed by cfg.
func NewResolver(cfg *config.BotConfig) *Resolver {
	return &Resolver{config: cfg}
}

// Level returns the member's permission level in the guild.
// The guild owner and administrators always get the maximum level.
func (r *Resolver) Level(guildID, ownerID uint64, member Member) int {
	if member.ID == ownerID || member.Administrator {
		return constants.MaxPermissionLevel
	}

	guild := r.config.GuildByID(guildID)
	if guild == nil {
		return 0
	}

	level := 0
	for _, entry := range guild.PermissionLevels {
		if entry.Level <= level {
			continue
		}

		if slices.ContainsFunc(entry.RoleIDs, func(id uint64) bool {
			return slices.Contains(member.RoleIDs, id)
		}) {
			level = min(entry.Level, constants.MaxPermissionLevel)
		}
	}

	return level
}

// Allowed reports whether the member reaches the required level.
func (r *Resolver) Allowed(guildID, ownerID uint64, member Member, required int) bool {
	return r.Level(guildID, ownerID, member) >= required
}
