package sheets

import "context"

// SheetsAPI defines the raw spreadsheet operations used by the timeline
// manager. The Google Sheets API mandates [][]interface{} for cell values;
// this is the only layer where interface{} should appear.
type SheetsAPI interface {
	UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
	ClearRange(ctx context.Context, spreadsheetID, range_ string) error
	CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error
	SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error)
}
