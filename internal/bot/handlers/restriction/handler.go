// Package restriction handles the slash commands that apply and lift toggled restrictions.
package restriction

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/casebot/internal/bot/constants"
	"github.com/robalyx/casebot/internal/bot/permission"
	"github.com/robalyx/casebot/internal/bot/utils"
	"github.com/robalyx/casebot/internal/moderation"
	"github.com/robalyx/casebot/internal/setup/config"
	"go.uber.org/zap"
)

// Discord limits audit log reasons to 512 characters; cases follow the same limit.
const maxReasonLength = 512

// GuildFetcher loads the guild and role data used by the permission and hierarchy checks.
type GuildFetcher interface {
	GetGuild(guildID snowflake.ID, withCounts bool, opts ...rest.RequestOpt) (*discord.RestGuild, error)
	GetRoles(guildID snowflake.ID, opts ...rest.RequestOpt) ([]discord.Role, error)
}

// Client is the part of the Discord REST API the handler calls.
type Client interface {
	MessageSender
	DirectMessageSender
	GuildFetcher
}

// CooldownLimiter throttles repeated commands from the same moderator.
type CooldownLimiter interface {
	Acquire(ctx context.Context, guildID, userID uint64, command string) (bool, time.Duration, error)
	Release(ctx context.Context, guildID, userID uint64, command string) error
}

// Invoker is the member that ran a command.
type Invoker struct {
	User          discord.User
	RoleIDs       []snowflake.ID
	Administrator bool
}

// Invocation is a slash command reduced to the values the handler reads.
type Invocation struct {
	CommandName string
	// GuildID is zero outside a guild.
	GuildID snowflake.ID
	// Invoker is nil outside a guild.
	Invoker *Invoker
	Target  *discord.User
	// TargetIsMember is false when the target has left or never joined the guild.
	TargetIsMember bool
	TargetRoleIDs  []snowflake.ID
	Reason         *string
	Silent         bool
}

// Handler runs restriction commands against the case log.
type Handler struct {
	client   Client
	cases    moderation.CaseStore
	config   *config.BotConfig
	resolver *permission.Resolver
	cooldown CooldownLimiter
	notifier *DirectMessenger
	actions  map[string]moderation.Action
	logger   *zap.Logger
}

// New creates a Handler serving the snippet ban and snippet unban commands.
// A nil limiter disables cooldowns.
func New(
	client Client,
	cases moderation.CaseStore,
	cfg *config.BotConfig,
	limiter CooldownLimiter,
	logger *zap.Logger,
) *Handler {
	logger = logger.Named("restriction")

	return &Handler{
		client:   client,
		cases:    cases,
		config:   cfg,
		resolver: permission.NewResolver(cfg),
		cooldown: limiter,
		notifier: NewDirectMessenger(client, logger),
		actions: map[string]moderation.Action{
			constants.SnippetBanCommandName:   moderation.SnippetBan,
			constants.SnippetUnbanCommandName: moderation.SnippetUnban,
		},
		logger: logger,
	}
}

// Commands returns the slash command definitions registered in every guild.
func (h *Handler) Commands() []discord.ApplicationCommandCreate {
	return []discord.ApplicationCommandCreate{
		commandCreate(constants.SnippetBanCommandName, "Ban a user from creating snippets."),
		commandCreate(constants.SnippetUnbanCommandName, "Allow a snippet banned user to create snippets again."),
	}
}

// Handles reports whether the handler serves the named command.
func (h *Handler) Handles(commandName string) bool {
	_, ok := h.actions[commandName]
	return ok
}

// Handle processes a deferred slash command interaction.
func (h *Handler) Handle(ctx context.Context, event *events.ApplicationCommandInteractionCreate) {
	inv := NewInvocation(event)

	var modLogChannelID snowflake.ID
	if guild := h.config.GuildByID(uint64(inv.GuildID)); inv.GuildID != 0 && guild != nil {
		modLogChannelID = snowflake.ID(guild.ModLogChannelID)
	}

	replier := NewInteractionReplier(h.client, event.ApplicationID(), event.Token(), modLogChannelID, h.logger)
	result := h.Run(ctx, inv, replier)

	h.logger.Debug("Restriction command finished",
		zap.String("command", inv.CommandName),
		zap.Uint64("guildID", uint64(inv.GuildID)),
		zap.String("status", result.Status.String()))
}

// NewInvocation extracts the command options and invoking member from an interaction.
func NewInvocation(event *events.ApplicationCommandInteractionCreate) *Invocation {
	data := event.SlashCommandInteractionData()

	inv := &Invocation{
		CommandName: data.CommandName(),
		Reason:      parseReason(data),
		Silent:      data.Bool(constants.SilentOptionName),
	}

	if guildID := event.GuildID(); guildID != nil {
		inv.GuildID = *guildID
	}

	if member := event.Member(); member != nil {
		inv.Invoker = &Invoker{
			User:          member.User,
			RoleIDs:       member.RoleIDs,
			Administrator: member.Permissions.Has(discord.PermissionAdministrator),
		}
	}

	if target, ok := data.OptUser(constants.MemberOptionName); ok {
		inv.Target = &target
	}

	if targetMember, ok := data.OptMember(constants.MemberOptionName); ok {
		inv.TargetIsMember = true
		inv.TargetRoleIDs = targetMember.RoleIDs
	}

	return inv
}

// Run checks that the invocation may proceed and executes the matching workflow.
// Refusals are replied through reply and returned as StatusDenied.
func (h *Handler) Run(ctx context.Context, inv *Invocation, reply moderation.Replier) moderation.Result {
	action, ok := h.actions[inv.CommandName]
	if !ok {
		return h.refuse(ctx, reply, "This command is not available.")
	}

	if inv.GuildID == 0 || inv.Invoker == nil {
		return h.refuse(ctx, reply, "This command can only be used in a server.")
	}

	guild, err := h.client.GetGuild(inv.GuildID, false, rest.WithCtx(ctx))
	if err != nil {
		h.logger.Error("Failed to fetch guild", zap.Uint64("guildID", uint64(inv.GuildID)), zap.Error(err))
		h.reply(ctx, reply, "Failed to load server information. Please try again later.")
		return moderation.Result{Status: moderation.StatusFailed, Err: err}
	}

	roles, err := h.client.GetRoles(inv.GuildID, rest.WithCtx(ctx))
	if err != nil {
		h.logger.Error("Failed to fetch roles", zap.Uint64("guildID", uint64(inv.GuildID)), zap.Error(err))
		h.reply(ctx, reply, "Failed to load server roles. Please try again later.")
		return moderation.Result{Status: moderation.StatusFailed, Err: err}
	}

	guildID := uint64(inv.GuildID)
	actor := permission.Member{
		ID:            uint64(inv.Invoker.User.ID),
		RoleIDs:       toUint64s(inv.Invoker.RoleIDs),
		Administrator: inv.Invoker.Administrator,
	}
	if !h.resolver.Allowed(guildID, uint64(guild.OwnerID), actor, constants.ModerationPermissionLevel) {
		return h.refuse(ctx, reply, fmt.Sprintf(
			"You need permission level %d to use this command.", constants.ModerationPermissionLevel))
	}

	if inv.Target == nil {
		return h.refuse(ctx, reply, "You must specify a member.")
	}

	acquired, refused := h.acquireCooldown(ctx, guildID, actor.ID, action.Name, reply)
	if refused {
		return moderation.Result{Status: moderation.StatusDenied}
	}

	hierarchy := Hierarchy{
		OwnerID:        uint64(guild.OwnerID),
		ActorPosition:  HighestRolePosition(inv.Invoker.RoleIDs, roles),
		TargetIsMember: inv.TargetIsMember,
	}
	if inv.TargetIsMember {
		hierarchy.TargetPosition = HighestRolePosition(inv.TargetRoleIDs, roles)
	}

	req := &moderation.Request{
		GuildID:   guildID,
		GuildName: guild.Name,
		Actor:     moderation.User{ID: actor.ID, Name: inv.Invoker.User.Username, Bot: inv.Invoker.User.Bot},
		Target:    moderation.User{ID: uint64(inv.Target.ID), Name: inv.Target.Username, Bot: inv.Target.Bot},
		Reason:    inv.Reason,
		Silent:    inv.Silent,
	}

	workflow := moderation.NewWorkflow(action, h.cases, NewConditionFunc(hierarchy, h.logger), h.notifier, h.logger)
	result := workflow.Execute(ctx, req, reply)

	// Only recorded cases count towards the cooldown
	if acquired && result.Status != moderation.StatusRecorded {
		if err := h.cooldown.Release(ctx, guildID, actor.ID, action.Name); err != nil {
			h.logger.Warn("Failed to release cooldown", zap.Error(err))
		}
	}

	return result
}

// acquireCooldown claims the moderator's cooldown slot. Redis failures let the
// command through without holding a slot.
func (h *Handler) acquireCooldown(
	ctx context.Context, guildID, userID uint64, command string, reply moderation.Replier,
) (acquired, refused bool) {
	if h.cooldown == nil {
		return false, false
	}

	allowed, remaining, err := h.cooldown.Acquire(ctx, guildID, userID, command)
	if err != nil {
		h.logger.Warn("Cooldown check failed, continuing", zap.Error(err))
		return false, false
	}

	if !allowed {
		h.reply(ctx, reply, fmt.Sprintf(
			"Please wait %s before using this command again.", utils.FormatCooldown(remaining)))
		return false, true
	}

	return true, false
}

func (h *Handler) refuse(ctx context.Context, reply moderation.Replier, content string) moderation.Result {
	h.reply(ctx, reply, content)
	return moderation.Result{Status: moderation.StatusDenied}
}

// reply sends content and logs delivery failures.
func (h *Handler) reply(ctx context.Context, reply moderation.Replier, content string) {
	if err := reply.Reply(ctx, content); err != nil {
		h.logger.Error("Failed to send reply", zap.Error(err))
	}
}

// parseReason returns the normalized reason option, or nil when it is missing or blank.
func parseReason(data discord.SlashCommandInteractionData) *string {
	raw, ok := data.OptString(constants.ReasonOptionName)
	if !ok {
		return nil
	}

	return NormalizeReason(raw)
}

// NormalizeReason cleans a moderator supplied reason. Blank reasons become nil
// so the default reason is recorded instead.
func NormalizeReason(raw string) *string {
	reason := utils.TruncateString(utils.NormalizeReason(raw), maxReasonLength)
	if reason == "" {
		return nil
	}
	return &reason
}

func commandCreate(name, description string) discord.SlashCommandCreate {
	maxLength := maxReasonLength

	return discord.SlashCommandCreate{
		Name:        name,
		Description: description,
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionUser{
				Name:        constants.MemberOptionName,
				Description: "The member to act on.",
				Required:    true,
			},
			discord.ApplicationCommandOptionString{
				Name:        constants.ReasonOptionName,
				Description: "The reason recorded in the case.",
				MaxLength:   &maxLength,
			},
			discord.ApplicationCommandOptionBool{
				Name:        constants.SilentOptionName,
				Description: "Do not send the member a direct message.",
			},
		},
	}
}

func toUint64s(ids []snowflake.ID) []uint64 {
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = uint64(id)
	}
	return out
}
