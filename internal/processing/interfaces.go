package processing

import (
	"context"

	"clash_war_timeline/internal/app"
)

// ClashClientInterface defines the war data API methods used by TimelineProcessor
type ClashClientInterface interface {
	GetCurrentWar(ctx context.Context, clanTag string) (*app.WarData, error)
	GetPreviousWars(ctx context.Context, clanTag string, limit int) ([]app.WarData, error)
}

// SheetsClientInterface defines the sheet operations used by TimelineProcessor
type SheetsClientInterface interface {
	EnsureTimelineSheet(ctx context.Context, spreadsheetID, clanTag string, position int) (string, error)
	UpdateTimeline(ctx context.Context, spreadsheetID, sheetName string, warTimeline []app.TimelineSnapshot) error
}

// TimelineExporterInterface defines the JSON artifact publication step
type TimelineExporterInterface interface {
	ExportTimeline(payload *app.TimelineExport) error
}

// TimelineArchiverInterface defines the long-term snapshot archive step
type TimelineArchiverInterface interface {
	ArchiveTimeline(ctx context.Context, clanTag string, position int, warTimeline []app.TimelineSnapshot) error
}
