package handlers

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"trendbrief/internal/config"
	"trendbrief/internal/core"
	"trendbrief/internal/logger"
	"trendbrief/internal/runs"
	"trendbrief/internal/store"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trendbrief",
		Short: "Trendbrief ingests weekly social signals and produces a marketing brief.",
		Long: `Trendbrief pulls a week of posts from social platforms, news feeds, and
search-interest data, condenses them into a structured context payload, and
generates a weekly marketing brief as Markdown plus a rendered Word document.

Each stage can run on its own (ingest, context, report, render) or end to end
with "run". Every invocation works inside an isolated run directory so reruns
never disturb earlier artifacts.`,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.trendbrief.yaml)")

	rootCmd.AddCommand(NewIngestCmd())
	rootCmd.AddCommand(NewContextCmd())
	rootCmd.AddCommand(NewReportCmd())
	rootCmd.AddCommand(NewRenderCmd())
	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewRunsCmd())
	rootCmd.AddCommand(NewUploadCmd())
	rootCmd.AddCommand(NewTUICmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	_, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}

// openWorkset resolves runID to a working set. An empty runID selects the
// newest existing run; stages after ingest need one to already exist.
func openWorkset(dataDir, runID string, requireExisting bool) (*runs.Workset, error) {
	if runID == "" && requireExisting {
		ids, err := runs.List(dataDir)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("no runs found under %s: run ingest first", dataDir)
		}
		runID = ids[0]
	}
	return runs.Open(dataDir, runID)
}

// saveRunStatus updates the run's status in the store, keeping the original
// creation time when the run is already recorded. Failures only warn: the
// filesystem artifacts are the source of truth.
func saveRunStatus(runID, status string) {
	cfg := config.Get()
	st, err := store.NewStore(cfg.App.DataDir)
	if err != nil {
		logger.Warn("Failed to open store", "error", err.Error())
		return
	}
	defer func() { _ = st.Close() }()

	run := core.Run{
		ID:        runID,
		DateStamp: runs.DateStamp(),
		CreatedAt: time.Now().UTC(),
		Status:    status,
	}
	if existing, err := st.GetRun(runID); err == nil && existing != nil {
		run.DateStamp = existing.DateStamp
		run.CreatedAt = existing.CreatedAt
	}

	if err := st.SaveRun(run); err != nil {
		logger.Warn("Failed to record run status", "run_id", runID, "status", status, "error", err.Error())
	}
}
