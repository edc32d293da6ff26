package export

import (
	"encoding/json"
	"fmt"
	"os"

	"clash_war_timeline/internal/app"
	"clash_war_timeline/internal/deployment"

	"github.com/rs/zerolog/log"
)

// JSONExporter writes the timeline artifact to a local file and optionally
// pushes it to a web host. It replaces server-side rendering: the published
// JSON is what the external presentation layer consumes.
type JSONExporter struct {
	outputFile string
	deployer   *deployment.SSHDeployer
}

// NewJSONExporter creates an exporter. deployURL may be empty, in which case
// the artifact stays local.
func NewJSONExporter(outputFile, deployURL, keyPath string) *JSONExporter {
	var deployer *deployment.SSHDeployer
	if deployURL != "" {
		deployer = deployment.NewSSHDeployer(deployURL, keyPath)
	}

	return &JSONExporter{
		outputFile: outputFile,
		deployer:   deployer,
	}
}

// ExportTimeline serializes the export payload and publishes it
func (e *JSONExporter) ExportTimeline(payload *app.TimelineExport) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal timeline export: %w", err)
	}

	if err := os.WriteFile(e.outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write timeline export to %s: %w", e.outputFile, err)
	}

	log.Debug().
		Str("output_file", e.outputFile).
		Int("snapshot_count", len(payload.WarTimeline)).
		Msg("Wrote timeline JSON artifact")

	if e.deployer != nil {
		if err := e.deployer.Deploy(e.outputFile); err != nil {
			return fmt.Errorf("failed to deploy timeline export: %w", err)
		}
	}

	return nil
}
