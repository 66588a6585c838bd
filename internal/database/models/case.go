package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robalyx/casebot/internal/database/dbretry"
	"github.com/robalyx/casebot/internal/database/types"
	"github.com/robalyx/casebot/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrCaseNotFound is returned when a case number does not exist in a guild.
var ErrCaseNotFound = errors.New("case not found")

// CaseModel handles database operations for moderation cases.
type CaseModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewCase creates a new CaseModel instance.
func NewCase(db *bun.DB, logger *zap.Logger) *CaseModel {
	return &CaseModel{
		db:     db,
		logger: logger.Named("db_case"),
	}
}

// InsertCase records a new case and assigns it the next case number of the guild.
// The counter bump and the insert share one transaction so numbers are never reused.
func (m *CaseModel) InsertCase(
	ctx context.Context, userID, moderatorID uint64, caseType enum.CaseType, reason string, guildID uint64,
) (*types.Case, error) {
	var record *types.Case

	err := dbretry.Transaction(ctx, m.db, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()

		guild := &types.Guild{
			ID:        guildID,
			CaseCount: 1,
			CreatedAt: now,
		}

		_, err := tx.NewInsert().
			Model(guild).
			On("CONFLICT (id) DO UPDATE").
			Set("case_count = guild.case_count + 1").
			Returning("case_count").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to allocate case number: %w", err)
		}

		record = &types.Case{
			GuildID:     guildID,
			CaseNumber:  guild.CaseCount,
			UserID:      userID,
			ModeratorID: moderatorID,
			Type:        caseType,
			Reason:      reason,
			CreatedAt:   now,
		}

		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert case: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Debug("Inserted case",
		zap.Uint64("guildID", guildID),
		zap.Int64("caseNumber", record.CaseNumber),
		zap.String("type", caseType.String()),
		zap.Uint64("userID", userID),
		zap.Uint64("moderatorID", moderatorID))

	return record, nil
}

// GetAllCasesByType retrieves every case of a type in a guild, oldest first.
func (m *CaseModel) GetAllCasesByType(
	ctx context.Context, guildID uint64, caseType enum.CaseType,
) ([]*types.Case, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Case, error) {
		var cases []*types.Case

		err := m.db.NewSelect().
			Model(&cases).
			Where("guild_id = ?", guildID).
			Where("type = ?", caseType).
			Order("case_number ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get cases by type: %w", err)
		}

		return cases, nil
	})
}

// GetCasesByUser retrieves every case a user is the subject of in a guild, oldest first.
func (m *CaseModel) GetCasesByUser(ctx context.Context, guildID, userID uint64) ([]*types.Case, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Case, error) {
		var cases []*types.Case

		err := m.db.NewSelect().
			Model(&cases).
			Where("guild_id = ?", guildID).
			Where("user_id = ?", userID).
			Order("case_number ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get cases by user: %w", err)
		}

		return cases, nil
	})
}

// GetCaseByNumber retrieves a single case by its per-guild number.
func (m *CaseModel) GetCaseByNumber(ctx context.Context, guildID uint64, caseNumber int64) (*types.Case, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Case, error) {
		var record types.Case

		err := m.db.NewSelect().
			Model(&record).
			Where("guild_id = ?", guildID).
			Where("case_number = ?", caseNumber).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrCaseNotFound
			}

			return nil, fmt.Errorf("failed to get case: %w", err)
		}

		return &record, nil
	})
}

// GetGuildCases streams all cases of a guild in case number order, in batches of batchSize.
// It stops at the first error returned by fn.
func (m *CaseModel) GetGuildCases(
	ctx context.Context, guildID uint64, batchSize int, fn func([]*types.Case) error,
) error {
	var lastNumber int64

	for {
		batch, err := dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Case, error) {
			var cases []*types.Case

			err := m.db.NewSelect().
				Model(&cases).
				Where("guild_id = ?", guildID).
				Where("case_number > ?", lastNumber).
				Order("case_number ASC").
				Limit(batchSize).
				Scan(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get guild cases: %w", err)
			}

			return cases, nil
		})
		if err != nil {
			return err
		}

		if len(batch) == 0 {
			return nil
		}

		if err := fn(batch); err != nil {
			return err
		}

		if len(batch) < batchSize {
			return nil
		}

		lastNumber = batch[len(batch)-1].CaseNumber
	}
}
