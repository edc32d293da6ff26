package clash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"clash_war_timeline/internal/app"
	"clash_war_timeline/internal/config"

	"github.com/rs/zerolog/log"
)

// Client talks to the ClashKing war data API
type Client struct {
	baseURL      string
	client       *http.Client
	retry        config.RetryConfig
	apiCallCount int64
	apiCallMutex sync.Mutex
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		retry: config.DefaultResilienceConfig.APIRequest,
	}
}

// IncrementAPICall safely increments the API call counter
func (c *Client) IncrementAPICall() {
	c.apiCallMutex.Lock()
	c.apiCallCount++
	c.apiCallMutex.Unlock()
}

// GetAPICallCount returns the current API call count
func (c *Client) GetAPICallCount() int64 {
	c.apiCallMutex.Lock()
	defer c.apiCallMutex.Unlock()
	return c.apiCallCount
}

// ResetAPICallCount resets the API call counter to zero
func (c *Client) ResetAPICallCount() {
	c.apiCallMutex.Lock()
	c.apiCallCount = 0
	c.apiCallMutex.Unlock()
}

// escapeTag percent-encodes the leading # of a clan tag for use in a URL path
func escapeTag(tag string) string {
	return strings.ReplaceAll(tag, "#", "%23")
}

// fetchJSON executes a GET request with retry and decodes the body into out.
// A 404 response returns errNotFound without retrying; war endpoints treat it
// as "no data" rather than a failure.
func (c *Client) fetchJSON(ctx context.Context, url string, out interface{}) error {
	notFound := false
	err := config.WithRetry(ctx, c.retry, "clash_api_request", func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			log.Debug().
				Err(err).
				Str("url", url).
				Msg("API request failed")
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()

		c.IncrementAPICall()

		if resp.StatusCode == http.StatusNotFound {
			notFound = true
			return nil
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}
	if notFound {
		return errNotFound
	}
	return nil
}

// GetCurrentWar fetches the clan's current war snapshot. A clan that is not
// currently in war yields a nil snapshot, not an error.
func (c *Client) GetCurrentWar(ctx context.Context, clanTag string) (*app.WarData, error) {
	url := fmt.Sprintf("%s/v1/clans/%s/currentwar", c.baseURL, escapeTag(clanTag))

	log.Debug().Str("url", url).Str("clan_tag", clanTag).Msg("Fetching current war")

	var war app.WarData
	if err := c.fetchJSON(ctx, url, &war); err != nil {
		if err == errNotFound {
			log.Debug().Str("clan_tag", clanTag).Msg("No current war found")
			return nil, nil
		}
		return nil, err
	}

	if war.State == "notInWar" {
		log.Debug().Str("clan_tag", clanTag).Msg("Clan is not in war")
		return nil, nil
	}

	log.Debug().
		Str("clan_tag", clanTag).
		Int("team_size", war.TeamSize).
		Int("clan_members", len(war.Clan.Members)).
		Int("opponent_members", len(war.Opponent.Members)).
		Msg("Successfully fetched current war")

	return &war, nil
}

// GetPreviousWars fetches up to limit recent finished wars, most recent first
func (c *Client) GetPreviousWars(ctx context.Context, clanTag string, limit int) ([]app.WarData, error) {
	url := fmt.Sprintf("%s/war/%s/previous?limit=%d", c.baseURL, escapeTag(clanTag), limit)

	log.Debug().Str("url", url).Str("clan_tag", clanTag).Int("limit", limit).Msg("Fetching previous wars")

	var wars []app.WarData
	if err := c.fetchJSON(ctx, url, &wars); err != nil {
		if err == errNotFound {
			log.Debug().Str("clan_tag", clanTag).Msg("No previous wars found")
			return nil, nil
		}
		return nil, err
	}

	log.Debug().
		Str("clan_tag", clanTag).
		Int("wars_count", len(wars)).
		Msg("Successfully fetched previous wars")

	return wars, nil
}
