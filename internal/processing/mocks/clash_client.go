package mocks

import (
	"context"

	"clash_war_timeline/internal/app"
)

// MockClashClient is a test double for the clash.Client
type MockClashClient struct {
	// Responses to return
	CurrentWarResponse   *app.WarData
	PreviousWarsResponse []app.WarData

	// Errors to return
	CurrentWarError   error
	PreviousWarsError error

	// Call tracking
	GetCurrentWarCalled        bool
	GetPreviousWarsCalled      bool
	GetCurrentWarCalledWith    string
	GetPreviousWarsCalledWith  string
	GetPreviousWarsCalledLimit int
}

// NewMockClashClient creates a new mock clash client
func NewMockClashClient() *MockClashClient {
	return &MockClashClient{}
}

func (m *MockClashClient) GetCurrentWar(ctx context.Context, clanTag string) (*app.WarData, error) {
	m.GetCurrentWarCalled = true
	m.GetCurrentWarCalledWith = clanTag
	return m.CurrentWarResponse, m.CurrentWarError
}

func (m *MockClashClient) GetPreviousWars(ctx context.Context, clanTag string, limit int) ([]app.WarData, error) {
	m.GetPreviousWarsCalled = true
	m.GetPreviousWarsCalledWith = clanTag
	m.GetPreviousWarsCalledLimit = limit
	return m.PreviousWarsResponse, m.PreviousWarsError
}
