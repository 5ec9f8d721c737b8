package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"trendbrief/internal/config"
	"trendbrief/internal/core"
	"trendbrief/internal/ingest"
	"trendbrief/internal/logger"
	"trendbrief/internal/runs"
	"trendbrief/internal/store"
)

// NewIngestCmd creates the ingest command.
func NewIngestCmd() *cobra.Command {
	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Fetch this week's raw rows from all configured sources",
		Long: `Fetch posts, articles, and search-interest data from every configured
source. Each source writes its own raw JSONL file plus a combined batch under
the run directory. A failing source is logged and skipped.`,
		Run: func(cmd *cobra.Command, args []string) {
			runID, _ := cmd.Flags().GetString("run-id")
			if err := runIngest(runID); err != nil {
				logger.Error("Ingest failed", err)
				os.Exit(1)
			}
		},
	}

	ingestCmd.Flags().String("run-id", "", "Run to ingest into (default: start a new run)")
	return ingestCmd
}

func runIngest(runID string) error {
	cfg := config.Get()

	ws, err := runs.Open(cfg.App.DataDir, runID)
	if err != nil {
		return err
	}

	st, err := store.NewStore(cfg.App.DataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer func() { _ = st.Close() }()

	manager := ingest.NewManager(cfg, st)
	rows, err := manager.Run(context.Background(), ws)
	if err != nil {
		return err
	}

	if err := st.SaveRun(core.Run{
		ID:        ws.ID,
		DateStamp: runs.DateStamp(),
		CreatedAt: time.Now().UTC(),
		Status:    "ingested",
	}); err != nil {
		logger.Warn("Failed to record run", "run_id", ws.ID, "error", err.Error())
	}

	fmt.Printf("Ingested %d rows into run %s\n", len(rows), ws.ID)
	return nil
}
