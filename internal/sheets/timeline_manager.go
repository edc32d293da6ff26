package sheets

import (
	"context"
	"fmt"

	"clash_war_timeline/internal/app"
	"clash_war_timeline/internal/config"

	"github.com/rs/zerolog/log"
)

// timelineHeaders is the header row written to every timeline sheet
var timelineHeaders = []interface{}{
	"Order",
	"Clan Stars",
	"Clan Destruction %",
	"Clan Attacks Used",
	"Opponent Stars",
	"Opponent Destruction %",
	"Opponent Attacks Used",
	"Attacker Side",
	"Attacker Tag",
	"Defender Tag",
	"Attack Stars",
	"Attack Destruction %",
	"Attack Duration (s)",
}

// TimelineManager handles business logic for war timeline sheet management.
// Separated from infrastructure concerns for better testability.
type TimelineManager struct {
	api   SheetsAPI
	retry config.RetryConfig
}

// NewTimelineManager creates a new timeline manager with the given API client
func NewTimelineManager(api SheetsAPI) *TimelineManager {
	return &TimelineManager{
		api:   api,
		retry: config.DefaultResilienceConfig.SheetWrite,
	}
}

// GenerateTimelineTabName builds the per-war tab name for a clan and war position
func (m *TimelineManager) GenerateTimelineTabName(clanTag string, position int) string {
	return fmt.Sprintf("Timeline - %s - War %d", clanTag, position)
}

// EnsureTimelineSheet creates the timeline sheet for a war if it doesn't exist
// and returns its tab name
func (m *TimelineManager) EnsureTimelineSheet(ctx context.Context, spreadsheetID, clanTag string, position int) (string, error) {
	tabName := m.GenerateTimelineTabName(clanTag, position)

	log.Debug().
		Str("clan_tag", clanTag).
		Int("position", position).
		Str("tab_name", tabName).
		Msg("Ensuring timeline sheet exists")

	exists, err := m.api.SheetExists(ctx, spreadsheetID, tabName)
	if err != nil {
		return "", fmt.Errorf("failed to check if timeline sheet exists: %w", err)
	}

	if !exists {
		log.Info().
			Str("sheet_name", tabName).
			Msg("Creating timeline sheet")

		if err := m.api.CreateSheet(ctx, spreadsheetID, tabName); err != nil {
			return "", fmt.Errorf("failed to create timeline sheet: %w", err)
		}
	}

	return tabName, nil
}

// UpdateTimeline rewrites the timeline sheet with one row per snapshot.
// The whole tab is cleared first so a shrinking timeline (new war in the same
// slot) never leaves stale rows behind.
func (m *TimelineManager) UpdateTimeline(ctx context.Context, spreadsheetID, sheetName string, warTimeline []app.TimelineSnapshot) error {
	rows := BuildTimelineRows(warTimeline)

	clearRange := fmt.Sprintf("'%s'!A:Z", sheetName)
	if err := m.api.ClearRange(ctx, spreadsheetID, clearRange); err != nil {
		return fmt.Errorf("failed to clear timeline sheet: %w", err)
	}

	writeRange := fmt.Sprintf("'%s'!A1", sheetName)
	err := config.WithRetry(ctx, m.retry, "sheet_write", func(ctx context.Context) error {
		return m.api.UpdateRange(ctx, spreadsheetID, writeRange, rows)
	})
	if err != nil {
		return fmt.Errorf("failed to write timeline rows: %w", err)
	}

	log.Debug().
		Str("sheet_name", sheetName).
		Int("snapshot_count", len(warTimeline)).
		Msg("Updated timeline sheet")

	return nil
}

// BuildTimelineRows converts snapshots into sheet rows, header included.
// The initial zero-state snapshot has no attack columns.
//
// Pure function: No I/O, deterministic output from input.
func BuildTimelineRows(warTimeline []app.TimelineSnapshot) [][]interface{} {
	rows := make([][]interface{}, 0, len(warTimeline)+1)
	rows = append(rows, timelineHeaders)

	for _, snapshot := range warTimeline {
		row := []interface{}{
			snapshot.Order,
			snapshot.ClanStars,
			snapshot.ClanDestruction,
			snapshot.ClanAttacksUsed,
			snapshot.OpponentStars,
			snapshot.OpponentDestruction,
			snapshot.OpponentAttacksUsed,
		}

		if snapshot.LastAttack != nil {
			row = append(row,
				string(snapshot.LastAttack.Side),
				snapshot.LastAttack.AttackerTag,
				snapshot.LastAttack.DefenderTag,
				snapshot.LastAttack.Stars,
				snapshot.LastAttack.DestructionPercentage,
				snapshot.LastAttack.Duration,
			)
		} else {
			row = append(row, "", "", "", "", "", "")
		}

		rows = append(rows, row)
	}

	return rows
}
