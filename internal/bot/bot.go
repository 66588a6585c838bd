package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/snowflake/v2"
	"github.com/redis/rueidis"
	"github.com/robalyx/casebot/internal/bot/cooldown"
	"github.com/robalyx/casebot/internal/bot/handlers/restriction"
	"github.com/robalyx/casebot/internal/moderation"
	"github.com/robalyx/casebot/internal/setup/config"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Bot connects the Discord gateway to the moderation command handlers.
type Bot struct {
	client      bot.Client
	config      *config.BotConfig
	restriction *restriction.Handler
	sem         *semaphore.Weighted
	timeout     time.Duration
	logger      *zap.Logger
}

// New creates the Discord client and the command handlers.
func New(
	cfg *config.BotConfig,
	cases moderation.CaseStore,
	cooldownClient rueidis.Client,
	logger *zap.Logger,
) (*Bot, error) {
	b := &Bot{
		config:  cfg,
		sem:     semaphore.NewWeighted(int64(max(cfg.Commands.MaxConcurrent, 1))),
		timeout: time.Duration(cfg.Commands.RequestTimeout) * time.Millisecond,
		logger:  logger.Named("bot"),
	}

	// Configure Discord client with required gateway intents and event handlers
	client, err := disgo.New(cfg.Discord.Token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
			),
		),
		bot.WithEventListeners(&events.ListenerAdapter{
			OnApplicationCommandInteraction: b.handleApplicationCommandInteraction,
			OnGuildReady:                    b.handleGuildReady,
			OnGuildJoin:                     b.handleGuildJoin,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord client: %w", err)
	}

	limiter := cooldown.New(cooldownClient, time.Duration(cfg.Commands.Cooldown)*time.Millisecond, b.logger)

	b.client = client
	b.restriction = restriction.New(client.Rest(), cases, cfg, limiter, b.logger)

	return b, nil
}

// Start opens the gateway connection. Commands are registered per guild
// once the guild becomes available.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")
	return b.client.OpenGateway(ctx)
}

// Close gracefully shuts down the Discord gateway connection.
func (b *Bot) Close(ctx context.Context) {
	b.logger.Info("Closing bot")
	b.client.Close(ctx)
}

// handleGuildReady registers commands in guilds available at startup.
func (b *Bot) handleGuildReady(event *events.GuildReady) {
	b.registerCommands(event.Guild.ID)
}

// handleGuildJoin registers commands in newly joined guilds.
func (b *Bot) handleGuildJoin(event *events.GuildJoin) {
	b.registerCommands(event.Guild.ID)
}

// registerCommands replaces the guild's commands with the moderation commands.
// Guilds missing from the configuration are skipped.
func (b *Bot) registerCommands(guildID snowflake.ID) {
	if b.config.GuildByID(uint64(guildID)) == nil {
		b.logger.Debug("Skipping command registration for unconfigured guild",
			zap.Uint64("guildID", uint64(guildID)))
		return
	}

	_, err := b.client.Rest().SetGuildCommands(b.client.ApplicationID(), guildID, b.commands())
	if err != nil {
		b.logger.Error("Failed to register commands",
			zap.Uint64("guildID", uint64(guildID)),
			zap.Error(err))
		return
	}

	b.logger.Info("Registered commands", zap.Uint64("guildID", uint64(guildID)))
}

func (b *Bot) commands() []discord.ApplicationCommandCreate {
	return b.restriction.Commands()
}

// handleApplicationCommandInteraction defers the response and processes the
// command in a goroutine bounded by the concurrency limit.
func (b *Bot) handleApplicationCommandInteraction(event *events.ApplicationCommandInteractionCreate) {
	go func() {
		// Defer response to prevent Discord timeout while processing
		if err := event.DeferCreateMessage(true); err != nil {
			b.logger.Error("Failed to defer create message", zap.Error(err))
			return
		}

		ctx := context.Background()
		if b.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, b.timeout)
			defer cancel()
		}

		b.dispatch(ctx, event.SlashCommandInteractionData().CommandName(),
			func(message string) { b.respondWithError(event, message) },
			func(ctx context.Context) { b.restriction.Handle(ctx, event) })
	}()
}

// dispatch runs handle once a concurrency slot is free. Panics are recovered and
// reported through respond so the deferred interaction never stays pending.
func (b *Bot) dispatch(
	ctx context.Context, commandName string, respond func(message string), handle func(ctx context.Context),
) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		b.logger.Warn("Command dropped while waiting for a slot",
			zap.String("command", commandName),
			zap.Error(err))
		respond("The bot is busy. Please try again later.")
		return
	}
	defer b.sem.Release(1)

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Panic in application command interaction handler",
				zap.String("command", commandName),
				zap.Any("panic", r))
			respond("Internal error. Please report this to an administrator.")
		}
		b.logger.Debug("Application command interaction handled",
			zap.String("command", commandName),
			zap.Duration("duration", time.Since(start)))
	}()

	if !b.restriction.Handles(commandName) {
		respond("This command is not available.")
		return
	}

	handle(ctx)
}

// respondWithError sends an ephemeral follow-up on a deferred interaction.
func (b *Bot) respondWithError(event *events.ApplicationCommandInteractionCreate, message string) {
	_, err := event.Client().Rest().CreateFollowupMessage(event.ApplicationID(), event.Token(),
		discord.NewMessageCreateBuilder().
			SetContent(message).
			SetEphemeral(true).
			Build())
	if err != nil {
		b.logger.Error("Failed to send error response", zap.Error(err))
	}
}
