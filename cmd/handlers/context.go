package handlers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trendbrief/internal/config"
	"trendbrief/internal/ingest"
	"trendbrief/internal/logger"
	"trendbrief/internal/pipeline"
)

// NewContextCmd creates the context preparation command.
func NewContextCmd() *cobra.Command {
	contextCmd := &cobra.Command{
		Use:   "context",
		Short: "Condense the run's raw batch into the context payload",
		Long: `Deduplicate and normalize the run's combined raw batch, score engagement,
mine slang candidates, draw the platform-balanced sample, and write the
context payload the report stage consumes.`,
		Run: func(cmd *cobra.Command, args []string) {
			runID, _ := cmd.Flags().GetString("run-id")
			if err := runContext(runID); err != nil {
				logger.Error("Context preparation failed", err)
				os.Exit(1)
			}
		},
	}

	contextCmd.Flags().String("run-id", "", "Run to prepare (default: the newest run)")
	return contextCmd
}

func runContext(runID string) error {
	cfg := config.Get()

	ws, err := openWorkset(cfg.App.DataDir, runID, true)
	if err != nil {
		return err
	}

	combinedPath, err := ws.LatestCombined()
	if err != nil {
		return err
	}

	rows, err := ingest.ReadCombined(combinedPath)
	if err != nil {
		return err
	}

	payload := pipeline.Prepare(rows, pipeline.Options{
		PerPlatform: cfg.Context.PerPlatform,
		SlangTopK:   cfg.Context.SlangTopK,
		SlangMinLen: cfg.Context.SlangMinLen,
	})

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode context payload: %w", err)
	}
	if err := os.WriteFile(ws.ContextPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write context payload: %w", err)
	}

	saveRunStatus(ws.ID, "prepared")

	fmt.Printf("Prepared context for run %s: %d items, %d top posts, %d slang candidates\n",
		ws.ID, payload.Summary.TotalItems, len(payload.TopPosts), len(payload.SlangCandidates))
	return nil
}
