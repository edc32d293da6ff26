package mocks

import (
	"context"

	"clash_war_timeline/internal/app"
)

// MockSheetsClient is a test double for the sheets timeline manager
type MockSheetsClient struct {
	// Responses to return
	EnsureTimelineSheetResponse string

	// Errors to return
	EnsureTimelineSheetError error
	UpdateTimelineError      error

	// Call tracking
	EnsureTimelineSheetCalled     bool
	UpdateTimelineCalled          bool
	EnsureTimelineSheetCalledWith struct {
		SpreadsheetID string
		ClanTag       string
		Position      int
	}
	UpdateTimelineCalledWith struct {
		SpreadsheetID string
		SheetName     string
		WarTimeline   []app.TimelineSnapshot
	}
}

// NewMockSheetsClient creates a new mock sheets client
func NewMockSheetsClient() *MockSheetsClient {
	return &MockSheetsClient{
		EnsureTimelineSheetResponse: "Timeline - #TEST - War 0",
	}
}

func (m *MockSheetsClient) EnsureTimelineSheet(ctx context.Context, spreadsheetID, clanTag string, position int) (string, error) {
	m.EnsureTimelineSheetCalled = true
	m.EnsureTimelineSheetCalledWith.SpreadsheetID = spreadsheetID
	m.EnsureTimelineSheetCalledWith.ClanTag = clanTag
	m.EnsureTimelineSheetCalledWith.Position = position
	return m.EnsureTimelineSheetResponse, m.EnsureTimelineSheetError
}

func (m *MockSheetsClient) UpdateTimeline(ctx context.Context, spreadsheetID, sheetName string, warTimeline []app.TimelineSnapshot) error {
	m.UpdateTimelineCalled = true
	m.UpdateTimelineCalledWith.SpreadsheetID = spreadsheetID
	m.UpdateTimelineCalledWith.SheetName = sheetName
	m.UpdateTimelineCalledWith.WarTimeline = warTimeline
	return m.UpdateTimelineError
}
