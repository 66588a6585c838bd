package migrations

import (
	"context"
	"fmt"

	"github.com/robalyx/casebot/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		tables := []struct {
			model any
			name  string
		}{
			{(*types.Guild)(nil), "guilds"},
			{(*types.Case)(nil), "cases"},
		}

		for _, table := range tables {
			_, err := db.NewCreateTable().
				Model(table.model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table %s: %w", table.name, err)
			}
		}

		_, err := db.NewRaw(`
			-- Case numbers are unique per guild
			CREATE UNIQUE INDEX IF NOT EXISTS idx_cases_guild_number
			ON cases (guild_id, case_number);

			-- Ban state lookups scan a guild's cases of one type
			CREATE INDEX IF NOT EXISTS idx_cases_guild_type
			ON cases (guild_id, type);

			CREATE INDEX IF NOT EXISTS idx_cases_guild_user
			ON cases (guild_id, user_id);
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create case indexes: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			DROP TABLE IF EXISTS cases;
			DROP TABLE IF EXISTS guilds;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop case log tables: %w", err)
		}

		return nil
	})
}
