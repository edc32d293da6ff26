package main

import (
	"context"
	"flag"
	"time"

	"clash_war_timeline/internal/app"
	"clash_war_timeline/internal/archive"
	"clash_war_timeline/internal/clash"
	"clash_war_timeline/internal/export"
	"clash_war_timeline/internal/processing"
	"clash_war_timeline/internal/sheets"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	// Parse command line flags
	interval := flag.Duration("interval", 5*time.Minute, "Interval between timeline updates (e.g., 5m, 10m)")
	runOnce := flag.Bool("once", false, "Run once and exit (don't start scheduler)")
	position := flag.Int("position", 0, "War to reconstruct: 0 = current war, 1..N = previous wars")
	flag.Parse()

	log.Info().
		Dur("interval", *interval).
		Bool("run_once", *runOnce).
		Int("position", *position).
		Msg("Starting Clash War Timeline application")

	// Load configuration
	config, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	config.UpdateInterval = *interval

	ctx := context.Background()

	// Initialize clients
	clashClient := clash.NewClient(config.ClashAPIBaseURL)
	sheetsClient, err := sheets.NewClient(ctx, config.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create sheets client")
	}
	timelineManager := sheets.NewTimelineManager(sheetsClient)

	exporter := export.NewJSONExporter(config.OutputFile, config.DeployURL, config.DeployKeyFile)

	var archiver processing.TimelineArchiverInterface
	if config.ArchiveEnabled() {
		bqArchiver, err := archive.NewBigQueryArchiver(ctx, config.BigQueryProjectID, config.BigQueryDataset)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create BigQuery archiver")
		}
		defer bqArchiver.Close()
		archiver = bqArchiver

		log.Info().
			Str("project", config.BigQueryProjectID).
			Str("dataset", config.BigQueryDataset).
			Msg("BigQuery timeline archiving enabled")
	}

	// Initialize timeline processor
	processor := processing.NewTimelineProcessor(clashClient, timelineManager, exporter, archiver, config)

	// Define the main processing function
	processTimeline := func() {
		log.Debug().Msg("Starting timeline processing cycle")

		// Reset API call counter at the start of each cycle
		clashClient.ResetAPICallCount()

		if err := processor.ProcessWar(ctx, *position); err != nil {
			log.Error().Err(err).Msg("Failed to process war timeline")
			return
		}

		apiCalls := clashClient.GetAPICallCount()
		log.Info().
			Int64("api_calls", apiCalls).
			Msg("Completed timeline processing cycle")
	}

	// Run initial processing
	log.Info().Msg("Running initial timeline processing")
	processTimeline()

	// Exit if run-once flag is set
	if *runOnce {
		log.Info().Msg("Run-once mode: exiting after initial processing")
		return
	}

	// Start scheduled processing
	log.Info().
		Dur("interval", *interval).
		Msg("Starting scheduled timeline processing")

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for range ticker.C {
		processTimeline()
	}
}
