package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/robalyx/casebot/internal/database/types"
	"github.com/robalyx/casebot/internal/database/types/enum"
	"github.com/robalyx/casebot/internal/moderation"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// CaseCommands returns commands for inspecting the case log.
func CaseCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "cases",
			Usage: "Inspect the case log",
			Commands: []*cli.Command{
				{
					Name:  "list",
					Usage: "List the cases of a guild, optionally for one user",
					Flags: []cli.Flag{
						newGuildFlag(),
						&cli.UintFlag{Name: "user", Aliases: []string{"u"}, Usage: "Only cases against this user"},
					},
					Action: handleListCases(deps),
				},
				{
					Name:      "show",
					Usage:     "Show a single case by number",
					ArgsUsage: "NUMBER",
					Flags:     []cli.Flag{newGuildFlag()},
					Action:    handleShowCase(deps),
				},
				{
					Name:  "status",
					Usage: "Show whether a restriction is in effect for a user",
					Flags: []cli.Flag{
						newGuildFlag(),
						&cli.UintFlag{Name: "user", Aliases: []string{"u"}, Usage: "User ID", Required: true},
						&cli.StringFlag{
							Name:    "restriction",
							Aliases: []string{"r"},
							Value:   "snippetban",
							Usage:   "Toggled restriction: snippetban, pollban or jail",
						},
					},
					Action: handleRestrictionStatus(deps),
				},
			},
		},
	}
}

// handleListCases logs every case of a guild, or of one user in the guild.
func handleListCases(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		guildID := c.Uint("guild")
		cases := deps.DB.Model().Case()

		if userID := c.Uint("user"); userID != 0 {
			records, err := cases.GetCasesByUser(ctx, guildID, userID)
			if err != nil {
				return err
			}

			logCases(deps.Logger, records)
			deps.Logger.Info("Listed cases", zap.Uint64("userID", userID), zap.Int("count", len(records)))
			return nil
		}

		total := 0
		err := cases.GetGuildCases(ctx, guildID, 500, func(batch []*types.Case) error {
			logCases(deps.Logger, batch)
			total += len(batch)
			return nil
		})
		if err != nil {
			return err
		}

		deps.Logger.Info("Listed cases", zap.Uint64("guildID", guildID), zap.Int("count", total))
		return nil
	}
}

// handleShowCase logs a single case.
func handleShowCase(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() != 1 {
			return ErrNumberRequired
		}

		number, err := strconv.ParseInt(c.Args().First(), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid case number %q: %w", c.Args().First(), err)
		}

		record, err := deps.DB.Model().Case().GetCaseByNumber(ctx, c.Uint("guild"), number)
		if err != nil {
			return err
		}

		logCases(deps.Logger, []*types.Case{record})
		return nil
	}
}

// handleRestrictionStatus evaluates a restriction the same way the bot does.
func handleRestrictionStatus(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		banType, unbanType, err := ParseRestriction(c.String("restriction"))
		if err != nil {
			return err
		}

		guildID, userID := c.Uint("guild"), c.Uint("user")

		banned, err := moderation.NewStatusEvaluator(deps.DB.Model().Case()).
			IsBanned(ctx, guildID, userID, banType, unbanType)
		if err != nil {
			return err
		}

		deps.Logger.Info("Restriction status",
			zap.Uint64("guildID", guildID),
			zap.Uint64("userID", userID),
			zap.String("restriction", banType.String()),
			zap.Bool("active", banned))

		return nil
	}
}

// ParseRestriction resolves a restriction name to the case types that apply and lift it.
// Only one-to-one toggles are accepted since their state follows from counting cases.
func ParseRestriction(name string) (enum.CaseType, enum.CaseType, error) {
	banType, err := enum.CaseTypeString(strings.ToUpper(name))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnknownRestriction, name)
	}

	unbanType, ok := banType.ToggleInverse()
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s is not a toggled restriction", ErrUnknownRestriction, banType)
	}

	return banType, unbanType, nil
}

func newGuildFlag() *cli.UintFlag {
	return &cli.UintFlag{
		Name:     "guild",
		Aliases:  []string{"g"},
		Usage:    "Guild ID",
		Required: true,
	}
}

func logCases(logger *zap.Logger, cases []*types.Case) {
	for _, c := range cases {
		logger.Info("Case",
			zap.Int64("number", c.CaseNumber),
			zap.String("type", c.Type.String()),
			zap.Uint64("userID", c.UserID),
			zap.Uint64("moderatorID", c.ModeratorID),
			zap.String("reason", c.Reason),
			zap.Time("createdAt", c.CreatedAt))
	}
}
