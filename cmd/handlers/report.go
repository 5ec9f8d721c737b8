package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"trendbrief/internal/config"
	"trendbrief/internal/core"
	"trendbrief/internal/llm"
	"trendbrief/internal/logger"
	"trendbrief/internal/report"
	"trendbrief/internal/runs"
	"trendbrief/internal/store"
)

// NewReportCmd creates the brief generation command.
func NewReportCmd() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the weekly brief markdown from the context payload",
		Long: `Send the run's context payload to the model and write the generated
weekly brief markdown into the run's outputs directory. The brief is also
archived in the local database.`,
		Run: func(cmd *cobra.Command, args []string) {
			runID, _ := cmd.Flags().GetString("run-id")
			if err := runReport(runID); err != nil {
				logger.Error("Report generation failed", err)
				os.Exit(1)
			}
		},
	}

	reportCmd.Flags().String("run-id", "", "Run to generate for (default: the newest run)")
	return reportCmd
}

func runReport(runID string) error {
	cfg := config.Get()

	ws, err := openWorkset(cfg.App.DataDir, runID, true)
	if err != nil {
		return err
	}

	payload, err := loadContext(ws)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if timeout, perr := time.ParseDuration(cfg.AI.Gemini.Timeout); perr == nil && timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	client, err := llm.NewClient(ctx, cfg.AI.Gemini)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	brief, err := report.NewGenerator(client).Generate(ctx, ws.ID, payload)
	if err != nil {
		return err
	}

	if err := os.WriteFile(ws.BriefMarkdownPath(), []byte(brief.Markdown), 0644); err != nil {
		return fmt.Errorf("failed to write brief markdown: %w", err)
	}

	archiveBrief(cfg.App.DataDir, brief)
	saveRunStatus(ws.ID, "generated")

	fmt.Printf("Generated brief for run %s with %s -> %s\n", ws.ID, brief.ModelUsed, ws.BriefMarkdownPath())
	return nil
}

// loadContext reads the run's prepared context payload. A missing payload is
// a sequencing error: the context stage has to run first.
func loadContext(ws *runs.Workset) (*core.ContextPayload, error) {
	data, err := os.ReadFile(ws.ContextPath())
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("no context payload in %s: run context first", ws.Root)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read context payload: %w", err)
	}

	var payload core.ContextPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode context payload: %w", err)
	}
	return &payload, nil
}

// archiveBrief stores the brief in the database; failures only warn.
func archiveBrief(dataDir string, brief *core.Brief) {
	st, err := store.NewStore(dataDir)
	if err != nil {
		logger.Warn("Failed to open store", "error", err.Error())
		return
	}
	defer func() { _ = st.Close() }()

	if err := st.SaveBrief(*brief); err != nil {
		logger.Warn("Failed to archive brief", "run_id", brief.RunID, "error", err.Error())
	}
}
