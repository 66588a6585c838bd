package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
	ErrGuildIDMissing        = errors.New("guild entry is missing id")
)

// RepositoryVersion is the repository version tag for config file references.
const RepositoryVersion = "v0.1.0"

// Current version of the config files.
const (
	CurrentCommonVersion = 1
	CurrentBotVersion    = 1
)

// Config represents the entire application configuration.
type Config struct {
	Common CommonConfig `koanf:"common"`
	Bot    BotConfig    `koanf:"bot"`
}

// CommonConfig contains configuration shared between the bot and the tools.
type CommonConfig struct {
	// Version of the common config.
	Version    int        `koanf:"version"`
	Debug      Debug      `koanf:"debug"`
	PostgreSQL PostgreSQL `koanf:"postgresql"`
	Redis      Redis      `koanf:"redis"`
	Telemetry  Telemetry  `koanf:"telemetry"`
}

// BotConfig contains Discord bot specific configuration.
type BotConfig struct {
	// Version of the bot config.
	Version int `koanf:"version"`
	// Discord configuration.
	Discord Discord `koanf:"discord"`
	// Command handling configuration.
	Commands Commands `koanf:"commands"`
	// Per-guild moderation settings.
	Guilds []Guild `koanf:"guilds"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Maximum log sessions to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
	// Maximum lines per log file.
	MaxLogLines int `koanf:"max_log_lines"`
}

// PostgreSQL locates the database holding the case log.
type PostgreSQL struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"db_name"`
	// TLS enables an encrypted connection verified against Host.
	TLS bool `koanf:"tls"`
	// Pool limits. Durations use Go syntax such as "30m".
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

// Redis locates the database holding command cooldowns.
type Redis struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// Telemetry contains tracing configuration.
type Telemetry struct {
	// Uptrace DSN. Tracing is disabled when empty.
	DSN string `koanf:"dsn"`
	// Deployment environment reported with spans.
	Environment string `koanf:"environment"`
}

// Discord contains Discord bot configuration.
type Discord struct {
	// Discord bot token for authentication.
	Token string `koanf:"token"`
}

// Commands contains configuration for slash command handling.
type Commands struct {
	// Per-moderator cooldown between moderation commands in milliseconds (0 disables).
	Cooldown int `koanf:"cooldown"`
	// Maximum number of commands processed at once.
	MaxConcurrent int `koanf:"max_concurrent"`
	// Request timeout for a single command in milliseconds.
	RequestTimeout int `koanf:"request_timeout"`
}

// Guild contains moderation settings for a single guild.
type Guild struct {
	// Guild ID.
	ID uint64 `koanf:"id"`
	// Channel receiving case embeds (0 disables).
	ModLogChannelID uint64 `koanf:"mod_log_channel_id"`
	// Role IDs granting each permission level.
	PermissionLevels []PermissionLevel `koanf:"permission_levels"`
}

// PermissionLevel maps a numeric permission level to the roles that grant it.
type PermissionLevel struct {
	Level   int      `koanf:"level"`
	RoleIDs []uint64 `koanf:"role_ids"`
}

// GuildByID returns the settings of a guild, or nil when it is not configured.
func (c *BotConfig) GuildByID(guildID uint64) *Guild {
	for i := range c.Guilds {
		if c.Guilds[i].ID == guildID {
			return &c.Guilds[i]
		}
	}

	return nil
}

// LoadConfig loads the configuration from the default search paths.
// Returns the config and the directory the first config file was found in.
func LoadConfig() (*Config, string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return LoadConfigFrom([]string{
		".casebot",
		homeDir + "/.casebot/config",
		"/etc/casebot/config",
		"/app/config",
		"config",
		".",
	})
}

// LoadConfigFrom loads common.toml and bot.toml from the first path containing each.
func LoadConfigFrom(configPaths []string) (*Config, string, error) {
	k := koanf.New(".")

	var usedConfigPath string

	configFiles := []string{"common", "bot"}
	for _, configName := range configFiles {
		configLoaded := false

		for _, path := range configPaths {
			configPath := fmt.Sprintf("%s/%s.toml", path, configName)

			// Each file is nested under its own key so versions don't collide
			sub := koanf.New(".")
			if err := sub.Load(file.Provider(configPath), toml.Parser()); err != nil {
				continue
			}

			if err := k.MergeAt(sub, configName); err != nil {
				return nil, "", fmt.Errorf("failed to merge %s.toml: %w", configName, err)
			}

			configLoaded = true

			if usedConfigPath == "" {
				usedConfigPath = path
			}

			break
		}

		if !configLoaded {
			return nil, "", fmt.Errorf("%w: %s.toml", ErrConfigFileNotFound, configName)
		}
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := checkConfigVersion("common", config.Common.Version, CurrentCommonVersion); err != nil {
		return nil, "", err
	}

	if err := checkConfigVersion("bot", config.Bot.Version, CurrentBotVersion); err != nil {
		return nil, "", err
	}

	for i, guild := range config.Bot.Guilds {
		if guild.ID == 0 {
			return nil, "", fmt.Errorf("%w: guilds[%d]", ErrGuildIDMissing, i)
		}
	}

	return &config, usedConfigPath, nil
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(name string, current, expected int) error {
	if current == 0 {
		return fmt.Errorf("%w: %s.toml", ErrConfigVersionMissing, name)
	}

	if current != expected {
		return fmt.Errorf(
			"%w: %s.toml (got: %d, expected: %d)\n"+
				"Please update your config file from: https://github.com/robalyx/casebot/tree/%s/config/%s.toml",
			ErrConfigVersionMismatch,
			name,
			current,
			expected,
			RepositoryVersion,
			name,
		)
	}

	return nil
}
