package clash

import (
	"context"
	"errors"

	"clash_war_timeline/internal/app"
)

// errNotFound marks a 404 from the war endpoints; callers translate it to
// "no war data" instead of failing.
var errNotFound = errors.New("resource not found")

// ClashAPI defines the interface for interacting with the ClashKing API.
// This separates infrastructure concerns from business logic.
type ClashAPI interface {
	GetCurrentWar(ctx context.Context, clanTag string) (*app.WarData, error)
	GetPreviousWars(ctx context.Context, clanTag string, limit int) ([]app.WarData, error)

	// API call tracking
	GetAPICallCount() int64
	IncrementAPICall()
	ResetAPICallCount()
}
