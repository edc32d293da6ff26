package archive

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/rs/zerolog/log"

	"clash_war_timeline/internal/app"
)

// timelineTable is the table snapshot rows are appended to
const timelineTable = "war_timeline"

// snapshotRow is the flattened BigQuery representation of one snapshot.
// Member-level stats are not archived; side-level aggregates cover the
// analysis the table exists for.
type snapshotRow struct {
	ClanTag             string    `bigquery:"clan_tag"`
	WarPosition         int       `bigquery:"war_position"`
	Order               int       `bigquery:"attack_order"`
	ClanStars           int       `bigquery:"clan_stars"`
	ClanDestruction     float64   `bigquery:"clan_destruction"`
	ClanAttacksUsed     int       `bigquery:"clan_attacks_used"`
	OpponentStars       int       `bigquery:"opponent_stars"`
	OpponentDestruction float64   `bigquery:"opponent_destruction"`
	OpponentAttacksUsed int       `bigquery:"opponent_attacks_used"`
	AttackerTag         string    `bigquery:"attacker_tag"`
	DefenderTag         string    `bigquery:"defender_tag"`
	ArchivedAt          time.Time `bigquery:"archived_at"`
}

// BigQueryArchiver appends timeline snapshots to a BigQuery table for
// long-term analysis across wars
type BigQueryArchiver struct {
	client  *bigquery.Client
	dataset string
}

// NewBigQueryArchiver creates an archiver writing to the given project and dataset
func NewBigQueryArchiver(ctx context.Context, projectID, dataset string) (*BigQueryArchiver, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create BigQuery client: %w", err)
	}

	return &BigQueryArchiver{
		client:  client,
		dataset: dataset,
	}, nil
}

// ArchiveTimeline appends one row per snapshot to the timeline table
func (a *BigQueryArchiver) ArchiveTimeline(ctx context.Context, clanTag string, position int, warTimeline []app.TimelineSnapshot) error {
	now := time.Now().UTC()

	rows := make([]*snapshotRow, 0, len(warTimeline))
	for _, snapshot := range warTimeline {
		row := &snapshotRow{
			ClanTag:             clanTag,
			WarPosition:         position,
			Order:               snapshot.Order,
			ClanStars:           snapshot.ClanStars,
			ClanDestruction:     snapshot.ClanDestruction,
			ClanAttacksUsed:     snapshot.ClanAttacksUsed,
			OpponentStars:       snapshot.OpponentStars,
			OpponentDestruction: snapshot.OpponentDestruction,
			OpponentAttacksUsed: snapshot.OpponentAttacksUsed,
			ArchivedAt:          now,
		}
		if snapshot.LastAttack != nil {
			row.AttackerTag = snapshot.LastAttack.AttackerTag
			row.DefenderTag = snapshot.LastAttack.DefenderTag
		}
		rows = append(rows, row)
	}

	inserter := a.client.Dataset(a.dataset).Table(timelineTable).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("failed to insert timeline rows: %w", err)
	}

	log.Debug().
		Str("clan_tag", clanTag).
		Int("position", position).
		Int("row_count", len(rows)).
		Msg("Archived timeline to BigQuery")

	return nil
}

// Close releases the underlying BigQuery client
func (a *BigQueryArchiver) Close() error {
	return a.client.Close()
}
