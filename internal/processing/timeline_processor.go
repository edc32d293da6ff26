package processing

import (
	"context"
	"fmt"

	"clash_war_timeline/internal/app"
	"clash_war_timeline/internal/domain/timeline"

	"github.com/rs/zerolog/log"
)

// TimelineProcessor orchestrates one reconstruction cycle: fetch war data,
// select and orient the requested war, compute the timeline, and publish it.
type TimelineProcessor struct {
	clashClient  ClashClientInterface
	sheetsClient SheetsClientInterface
	exporter     TimelineExporterInterface
	archiver     TimelineArchiverInterface
	config       *app.Config
}

// NewTimelineProcessor creates a TimelineProcessor with interface
// dependencies for testability. exporter and archiver may be nil, which
// disables the corresponding publication step.
func NewTimelineProcessor(
	clashClient ClashClientInterface,
	sheetsClient SheetsClientInterface,
	exporter TimelineExporterInterface,
	archiver TimelineArchiverInterface,
	config *app.Config,
) *TimelineProcessor {
	return &TimelineProcessor{
		clashClient:  clashClient,
		sheetsClient: sheetsClient,
		exporter:     exporter,
		archiver:     archiver,
		config:       config,
	}
}

// ProcessWar reconstructs the war at the given position and publishes the
// result. Fetch failures on one source degrade to the other (the selection
// fallback handles a missing current war); only having no war data at all is
// an error.
func (p *TimelineProcessor) ProcessWar(ctx context.Context, position int) error {
	clanTag := p.config.ClanTag

	log.Info().
		Str("clan_tag", clanTag).
		Int("position", position).
		Msg("Processing war timeline")

	current, err := p.clashClient.GetCurrentWar(ctx, clanTag)
	if err != nil {
		log.Warn().Err(err).Str("clan_tag", clanTag).Msg("Failed to fetch current war, continuing with previous wars")
		current = nil
	}

	previous, err := p.clashClient.GetPreviousWars(ctx, clanTag, p.config.PreviousWarsLimit)
	if err != nil {
		log.Warn().Err(err).Str("clan_tag", clanTag).Msg("Failed to fetch previous wars, continuing with current war only")
		previous = nil
	}

	war, effectivePosition, err := SelectWar(current, previous, position)
	if err != nil {
		return fmt.Errorf("no war to reconstruct for clan %s: %w", clanTag, err)
	}

	if effectivePosition != position {
		log.Info().
			Int("requested_position", position).
			Int("effective_position", effectivePosition).
			Msg("Requested war unavailable, falling back")
	}

	OrientWar(war, clanTag)

	warTimeline, err := timeline.ComputeTimeline(war)
	if err != nil {
		return fmt.Errorf("failed to compute war timeline: %w", err)
	}

	p.logUnmatchedTags(war)

	sheetName, err := p.sheetsClient.EnsureTimelineSheet(ctx, p.config.SpreadsheetID, clanTag, effectivePosition)
	if err != nil {
		return fmt.Errorf("failed to ensure timeline sheet: %w", err)
	}

	if err := p.sheetsClient.UpdateTimeline(ctx, p.config.SpreadsheetID, sheetName, warTimeline); err != nil {
		return fmt.Errorf("failed to update timeline sheet: %w", err)
	}

	if p.exporter != nil {
		payload := buildExport(war, warTimeline, effectivePosition, current != nil, len(previous))
		if err := p.exporter.ExportTimeline(payload); err != nil {
			return fmt.Errorf("failed to export timeline artifact: %w", err)
		}
	}

	if p.archiver != nil {
		if err := p.archiver.ArchiveTimeline(ctx, clanTag, effectivePosition, warTimeline); err != nil {
			return fmt.Errorf("failed to archive timeline: %w", err)
		}
	}

	log.Info().
		Str("clan_tag", clanTag).
		Int("position", effectivePosition).
		Int("snapshot_count", len(warTimeline)).
		Msg("Completed war timeline processing")

	return nil
}

// logUnmatchedTags surfaces the fold's silent tolerance as a diagnostic.
// Unknown tags usually mean members left the clan mid-war; a high count
// points at inconsistent upstream data.
func (p *TimelineProcessor) logUnmatchedTags(war *app.WarData) {
	attacks, err := timeline.ExtractAttacks(war)
	if err != nil {
		return
	}

	if count := timeline.CountUnmatchedTags(war, attacks); count > 0 {
		log.Debug().
			Int("unmatched_tags", count).
			Str("clan_tag", war.Clan.Tag).
			Msg("Attack references tags absent from the roster snapshot")
	}
}

// buildExport assembles the JSON artifact payload for the rendering layer
func buildExport(war *app.WarData, warTimeline []app.TimelineSnapshot, position int, hasCurrent bool, previousCount int) *app.TimelineExport {
	attacksPerMember := war.AttacksPerMember
	if attacksPerMember == 0 {
		attacksPerMember = 1
	}

	return &app.TimelineExport{
		ClanTag:          war.Clan.Tag,
		ClanName:         war.Clan.Name,
		OpponentTag:      war.Opponent.Tag,
		OpponentName:     war.Opponent.Name,
		TeamSize:         war.TeamSize,
		AttacksPerMember: attacksPerMember,
		SelectedPosition: position,
		WarsAvailable:    WarOptions(hasCurrent, previousCount),
		WarTimeline:      warTimeline,
	}
}
