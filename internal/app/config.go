package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultClashAPIBaseURL is the ClashKing API endpoint used when
// CLASH_API_BASE_URL is not set
const DefaultClashAPIBaseURL = "https://api.clashking.xyz"

// Config holds application configuration
type Config struct {
	ClanTag           string
	SpreadsheetID     string
	CredentialsFile   string
	ClashAPIBaseURL   string
	DeployURL         string
	DeployKeyFile     string
	OutputFile        string
	BigQueryProjectID string
	BigQueryDataset   string
	PreviousWarsLimit int
	UpdateInterval    time.Duration
}

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	// Configure logging
	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		// Default based on environment
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	clanTag := os.Getenv("CLAN_TAG")
	if clanTag == "" {
		return nil, fmt.Errorf("CLAN_TAG environment variable is required")
	}

	spreadsheetID := os.Getenv("SPREADSHEET_ID")
	if spreadsheetID == "" {
		return nil, fmt.Errorf("SPREADSHEET_ID environment variable is required")
	}

	credentialsFile := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	if credentialsFile == "" {
		credentialsFile = "credentials.json"
	}

	baseURL := os.Getenv("CLASH_API_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultClashAPIBaseURL
	}

	outputFile := os.Getenv("TIMELINE_OUTPUT_FILE")
	if outputFile == "" {
		outputFile = "war_timeline.json"
	}

	previousWarsLimit := 10
	if limitStr := os.Getenv("PREVIOUS_WARS_LIMIT"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return nil, fmt.Errorf("PREVIOUS_WARS_LIMIT must be a positive integer, got %q", limitStr)
		}
		previousWarsLimit = limit
	}

	return &Config{
		ClanTag:           clanTag,
		SpreadsheetID:     spreadsheetID,
		CredentialsFile:   credentialsFile,
		ClashAPIBaseURL:   baseURL,
		DeployURL:         os.Getenv("DEPLOY_URL"),
		DeployKeyFile:     os.Getenv("DEPLOY_KEY_FILE"),
		OutputFile:        outputFile,
		BigQueryProjectID: os.Getenv("BQ_PROJECT_ID"),
		BigQueryDataset:   os.Getenv("BQ_DATASET"),
		PreviousWarsLimit: previousWarsLimit,
	}, nil
}

// ArchiveEnabled reports whether BigQuery archiving is configured
func (c *Config) ArchiveEnabled() bool {
	return c.BigQueryProjectID != "" && c.BigQueryDataset != ""
}
